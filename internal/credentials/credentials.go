// Package credentials checks usernames and passwords against a fixed user
// directory.
package credentials

import "crypto/subtle"

// Store answers whether a username and password pair is known.
type Store interface {
	Check(username, password string) (bool, error)
}

// Default is the user table used when none is configured.
func Default() map[string]string {
	return map[string]string{
		"alice": "pass123",
		"bob":   "pass456",
	}
}

type staticStore map[string]string

// Static returns a Store backed by users, a map of username to password. The
// map is copied so later changes to it have no effect.
func Static(users map[string]string) Store {
	s := make(staticStore, len(users))
	for k, v := range users {
		s[k] = v
	}
	return s
}

func (s staticStore) Check(username, password string) (bool, error) {
	expected, ok := s[username]
	if !ok {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1, nil
}
