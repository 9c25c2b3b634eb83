package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Joshua-Anderson1/scoutradioz/internal/auth"
	"github.com/Joshua-Anderson1/scoutradioz/internal/common"
	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
)

// SessionStore loads sessions for the authenticate stage.
type SessionStore interface {
	GetSession(ctx context.Context, sessionID string) (*common.SessionData, error)
}

// Authenticate builds a middleware that requires the signed-in user to
// meet the given access level. Building a route with an invalid level
// constant is a programming error (a misconfigured route), so it
// panics at construction rather than failing requests at runtime.
func Authenticate(sessions SessionStore, required constants.AccessLevel) func(http.Handler) http.Handler {
	if !required.Valid() {
		panic(fmt.Sprintf("middleware: invalid access level %d in route declaration", int(required)))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := resolveClaims(r, sessions)

			if claims == nil {
				// No user at all: send to org selection, carrying the
				// original URL for post-auth redirect.
				redirectToLogin(w, r)
				return
			}

			if claims.AccessLevel() < required {
				// The anonymous default identity fetching a page just
				// hasn't signed in yet; individuals with a real account
				// get the generic not-authorized page.
				if claims.Anonymous() && r.Method == http.MethodGet {
					redirectToLogin(w, r)
					return
				}
				http.Redirect(w, r, "/?alert="+url.QueryEscape("You are not authorized to access that page."), http.StatusSeeOther)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveClaims(r *http.Request, sessions SessionStore) auth.UserClaims {
	cookie, err := r.Cookie(common.SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := sessions.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}

	if session.Username == auth.DefaultUserName {
		return &auth.DefaultClaims{OrgKeyVal: session.OrgKey}
	}

	return &auth.SessionClaims{
		UserIDVal:      session.UserID,
		NameVal:        session.Username,
		OrgKeyVal:      session.OrgKey,
		AccessLevelVal: session.AccessLevel,
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := constants.LoginPath + "?rdr=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusSeeOther)
}
