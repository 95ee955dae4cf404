package session

import (
	"net/http"
	"time"
)

const (
	// CookieName carries the opaque session token. HttpOnly.
	CookieName = "registrar_session"
	// CSRFCookieName carries the signed anti-forgery token. Readable by the
	// frontend, which echoes it in the X-CSRF-Token header.
	CSRFCookieName = "registrar_csrf"
)

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
	Domain   string
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// SetCookies issues the session and anti-forgery cookies to the client.
func SetCookies(w http.ResponseWriter, token, csrf string, expiresAt time.Time, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    csrf,
		Path:     opts.Path,
		Domain:   opts.Domain,
		Expires:  expiresAt,
		HttpOnly: false,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookies removes the session and anti-forgery cookies from the client.
func ClearCookies(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	for _, name := range []string{CookieName, CSRFCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     opts.Path,
			Domain:   opts.Domain,
			MaxAge:   -1,
			HttpOnly: name == CookieName,
			Secure:   opts.Secure,
			SameSite: opts.SameSite,
		})
	}
}
