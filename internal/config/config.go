package config

import (
	"github.com/BurntSushi/toml"
	"hawx.me/code/sso-handshake/internal/credentials"
	"hawx.me/code/sso-handshake/internal/token"
)

// Config has the options required for running the identity provider.
type Config struct {
	// Secret is the key tokens are signed with.
	Secret string `toml:"secret"`

	// Users maps usernames to passwords.
	Users map[string]string `toml:"users"`

	// UsersDB, if set, is the path of a sqlite database that users are stored
	// in. Users listed in the config are added to it on start.
	UsersDB string `toml:"users_db"`

	// Redis, if set, is used to keep the active sessions so that they can be
	// shared between processes.
	Redis *Redis `toml:"redis"`

	Log    Log    `toml:"log"`
	Cookie Cookie `toml:"cookie"`
}

type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Cookie struct {
	Secure bool `toml:"secure"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		Secret: token.DefaultSecret,
		Users:  credentials.Default(),
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Read a TOML formatted configuration file. Anything the file does not set
// keeps its value from Default, except that a users table replaces the default
// users entirely.
func Read(path string) (Config, error) {
	conf := Default()
	conf.Users = nil

	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, err
	}

	if conf.Users == nil {
		conf.Users = credentials.Default()
	}

	return conf, nil
}
