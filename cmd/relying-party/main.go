// Command relying-party runs an application that signs users in through the
// identity provider.
//
// Several can be run side by side, on different ports and with different
// names, to see a single sign in and sign out shared between them:
//
//	relying-party -name HR -port 5001 -callback http://localhost:5001/callback
//	relying-party -name Finance -port 5002 -callback http://localhost:5002/callback
package main

import (
	"flag"
	"os"

	log "github.com/sirupsen/logrus"
	"hawx.me/code/route"
	"hawx.me/code/serve"
	"hawx.me/code/sso-handshake/internal/relyingparty"
	"hawx.me/code/sso-handshake/web"
)

func main() {
	var (
		port     = flag.String("port", "5001", "Port to run on")
		socket   = flag.String("socket", "", "Socket to run on")
		name     = flag.String("name", "App", "Name shown on the dashboard")
		idp      = flag.String("idp", "http://localhost:5000", "Base URL of the identity provider")
		callback = flag.String("callback", "http://localhost:5001/callback", "URL the identity provider returns to")
		timeout  = flag.Duration("timeout", relyingparty.DefaultTimeout, "How long to wait for the identity provider")
	)
	flag.Parse()

	templates, err := web.Templates()
	if err != nil {
		log.WithError(err).Error("could not parse templates")
		os.Exit(1)
	}

	guard := relyingparty.NewGuard(*idp, *callback, *timeout)

	route.Handle("/", guard.Root())
	route.Handle("/callback", guard.Callback())
	route.Handle("/dashboard", guard.Dashboard(*name, templates))

	serve.Serve(*port, *socket, route.Default)
}
