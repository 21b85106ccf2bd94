package random

import (
	"testing"

	"hawx.me/code/assert"
)

func TestKey(t *testing.T) {
	assert := assert.Wrap(t)

	a, err := Key(32)
	assert(err).Must.Nil()
	assert(a).Len(32)

	b, _ := Key(32)
	assert(string(a) == string(b)).False()
}
