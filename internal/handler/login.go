package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"hawx.me/code/mux"
	"hawx.me/code/sso-handshake/internal/auth"
	"hawx.me/code/sso-handshake/internal/cookie"
)

type loginService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Resume(sessionToken string) (user, raw string, err error)
}

// Login serves the sign in form and handles its submission.
//
// A GET with a valid session cookie skips the form: a fresh token is issued for
// the remembered user and the browser is sent straight back to "redirect_uri".
// A POST checks "username" and "password"; on success it sets the session
// cookie and redirects to "redirect_uri" with the token appended as the "token"
// parameter. Without a "redirect_uri" a confirmation page is shown instead.
func Login(service loginService, cookies cookie.Jar, templates tmpl) http.Handler {
	return mux.Method{
		"GET":  showLogin(service, cookies, templates),
		"POST": submitLogin(service, cookies, templates),
	}
}

func showLogin(service loginService, cookies cookie.Jar, templates tmpl) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redirectURI := r.FormValue("redirect_uri")

		if sessionToken := cookie.Get(r, cookie.Session); sessionToken != "" {
			user, raw, err := service.Resume(sessionToken)
			if err == nil {
				if redirectURI != "" {
					log.WithField("user", user).WithField("redirect_uri", redirectURI).Info("handler/login redirecting signed in user")
					http.Redirect(w, r, auth.RedirectURL(redirectURI, raw), http.StatusFound)
					return
				}

				render(w, templates, "logged-in.gotmpl", userCtx{User: user})
				return
			}

			log.WithError(err).Info("handler/login clearing unusable session cookie")
			cookies.Clear(w, cookie.Session)
		}

		render(w, templates, "login.gotmpl", loginCtx{RedirectURI: redirectURI})
	}
}

func submitLogin(service loginService, cookies cookie.Jar, templates tmpl) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := readLoginForm(r)
		if err != nil {
			http.Error(w, "the request was bad", http.StatusBadRequest)
			return
		}

		raw, err := service.Login(r.Context(), form.Username, form.Password)
		if err != nil {
			if errors.Is(err, auth.ErrCredentials) {
				render(w, templates, "login.gotmpl", loginCtx{
					RedirectURI: form.RedirectURI,
					Error:       "Invalid credentials",
				})
				return
			}

			log.WithError(err).Error("handler/login could not sign in")
			http.Error(w, "something went wrong", http.StatusInternalServerError)
			return
		}

		cookies.Set(w, cookie.Session, raw)

		if form.RedirectURI != "" {
			log.WithField("user", form.Username).WithField("redirect_uri", form.RedirectURI).Info("handler/login redirecting to app")
			http.Redirect(w, r, auth.RedirectURL(form.RedirectURI, raw), http.StatusFound)
			return
		}

		render(w, templates, "login-success.gotmpl", userCtx{User: form.Username})
	}
}

type loginForm struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	RedirectURI string `json:"redirect_uri"`
}

func readLoginForm(r *http.Request) (form loginForm, err error) {
	if isJSON(r) {
		err = json.NewDecoder(r.Body).Decode(&form)
		return
	}

	if err = r.ParseForm(); err != nil {
		return
	}

	form.Username = r.PostFormValue("username")
	form.Password = r.PostFormValue("password")
	form.RedirectURI = r.PostFormValue("redirect_uri")
	return
}

func render(w http.ResponseWriter, templates tmpl, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.WithError(err).WithField("template", name).Error("handler failed to write template")
	}
}

type loginCtx struct {
	RedirectURI string
	Error       string
}

type userCtx struct {
	User string
}
