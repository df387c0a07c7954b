// ABOUTME: Session-cookie identity extraction and allow-list authentication
// ABOUTME: The cookie is an unsigned identity claim kept for front-end compatibility
package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/harperreed/tably/crm"
)

// SessionCookieName is the single cookie carrying the caller's identity.
const SessionCookieName = "session"

const sessionTTL = 7 * 24 * time.Hour

// ErrNotAuthenticated marks requests with no usable session cookie.
var ErrNotAuthenticated = errors.New("not authenticated")

// Identity resolves the caller behind a request. The cookie scheme carries no
// cryptographic integrity; that is a known limitation of the existing
// contract, not a bug. Replacing it with a signed token later only means a
// new implementation of this interface.
type Identity interface {
	Identity(r *http.Request) (string, error)
}

// CookieIdentity reads the session cookie and returns the normalized email
// it carries.
type CookieIdentity struct{}

func (CookieIdentity) Identity(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", ErrNotAuthenticated
	}
	email := crm.NormalizeEmail(c.Value)
	if email == "" || !strings.Contains(email, "@") {
		return "", ErrNotAuthenticated
	}
	return email, nil
}

// AllowList is the set of identities permitted to log in. It is injected
// configuration, never a hardcoded literal.
type AllowList map[string]struct{}

// NewAllowList normalizes and deduplicates the configured emails.
func NewAllowList(emails []string) AllowList {
	a := make(AllowList, len(emails))
	for _, e := range emails {
		if norm := crm.NormalizeEmail(e); norm != "" {
			a[norm] = struct{}{}
		}
	}
	return a
}

func (a AllowList) Contains(email string) bool {
	_, ok := a[crm.NormalizeEmail(email)]
	return ok
}

// setSessionCookie writes the identity cookie with the contract attributes:
// HttpOnly, SameSite=Lax, Path=/, Secure outside dev, 7-day expiry.
func setSessionCookie(w http.ResponseWriter, email string, dev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    email,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !dev,
	})
}

func clearSessionCookie(w http.ResponseWriter, dev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !dev,
	})
}
