package main

import (
	"context"
	"flag"
	"os"

	log "github.com/sirupsen/logrus"
	"hawx.me/code/serve"
	"hawx.me/code/sso-handshake/internal/auth"
	"hawx.me/code/sso-handshake/internal/config"
	"hawx.me/code/sso-handshake/internal/cookie"
	"hawx.me/code/sso-handshake/internal/credentials"
	"hawx.me/code/sso-handshake/internal/metrics"
	"hawx.me/code/sso-handshake/internal/random"
	"hawx.me/code/sso-handshake/internal/server"
	"hawx.me/code/sso-handshake/internal/session"
	"hawx.me/code/sso-handshake/internal/token"
	"hawx.me/code/sso-handshake/web"
)

func main() {
	var (
		port         = flag.String("port", "5000", "Port to run on")
		socket       = flag.String("socket", "", "Socket to run on")
		configPath   = flag.String("config", "", "Path to config file")
		ephemeralKey = flag.Bool("ephemeral-key", false, "Sign tokens with a random key generated on start")
	)
	flag.Parse()

	conf := config.Default()
	if *configPath != "" {
		var err error
		if conf, err = config.Read(*configPath); err != nil {
			log.WithError(err).Error("could not read config")
			os.Exit(1)
		}
	}

	setupLogging(conf.Log)

	key := []byte(conf.Secret)
	if *ephemeralKey {
		var err error
		if key, err = random.Key(32); err != nil {
			log.WithError(err).Error("could not generate key")
			os.Exit(1)
		}
	} else if conf.Secret == token.DefaultSecret {
		log.Warn("signing tokens with the default secret, set one in the config or use -ephemeral-key")
	}

	sessions := session.NewMemory()
	if conf.Redis != nil {
		client, err := session.Connect(context.Background(), conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			log.WithError(err).Error("could not connect to redis")
			os.Exit(1)
		}
		defer client.Close()

		sessions = session.NewRedis(client, conf.Redis.Key)
	}

	users := credentials.Static(conf.Users)
	if conf.UsersDB != "" {
		directory, err := credentials.Open(conf.UsersDB)
		if err != nil {
			log.WithError(err).Error("could not open users database")
			os.Exit(1)
		}
		defer directory.Close()

		for username, password := range conf.Users {
			if err := directory.Put(username, password); err != nil {
				log.WithError(err).WithField("user", username).Error("could not add user")
				os.Exit(1)
			}
		}

		users = directory
	}

	templates, err := web.Templates()
	if err != nil {
		log.WithError(err).Error("could not parse templates")
		os.Exit(1)
	}

	m := metrics.New()
	service := auth.New(token.New(key), sessions, users, m)

	serve.Serve(*port, *socket, server.New(service, cookie.Jar{Secure: conf.Cookie.Secure}, templates, m))
}

func setupLogging(conf config.Log) {
	if conf.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	if conf.Level == "" {
		return
	}

	level, err := log.ParseLevel(conf.Level)
	if err != nil {
		log.WithError(err).Warn("unknown log level, using info")
		return
	}
	log.SetLevel(level)
}
