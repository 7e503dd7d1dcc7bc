package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/growcally/backend/internal/repositories"
	"github.com/growcally/backend/pkg/cognito"
	"github.com/labstack/echo/v4"
)

// Context keys set by the session guard for downstream handlers.
const (
	ContextKeyUserID = "sessionUserID"
	ContextKeyClaims = "sessionClaims"
)

// AccessTokenCookie is the cookie carrying the caller's access credential.
const AccessTokenCookie = "access_token"

const accessTokenCookieMaxAge = 24 * time.Hour

// SessionGuard verifies the caller's access credential on every request,
// transparently refreshing it through the identity provider when it has
// expired. Every failure on the refresh path is a 401: the caller cannot
// distinguish a broken refresh from a missing credential, and the response
// must not leak provider-internal detail.
func SessionGuard(
	userRepo repositories.UserRepository,
	provider cognito.Provider,
	verifier cognito.TokenVerifier,
	cookieDomain string,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.QueryParam("userId")
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" || userID == "" {
				log.Println("[Auth] No access token or user id")
				return echo.NewHTTPError(http.StatusUnauthorized,
					"Unauthorised: Your access token or user id is missing.")
			}
			accessToken := cookie.Value

			if cognito.IsTokenExpired(accessToken) {
				user, err := userRepo.GetUserByID(userID)
				if err != nil {
					log.Printf("[Auth] Failed to load user for refresh: %v\n", err)
					return echo.NewHTTPError(http.StatusUnauthorized,
						"Unauthorised: We've failed to confirm your user information.")
				}
				if user.RefreshToken == nil || *user.RefreshToken == "" {
					log.Println("[Auth] No refresh token")
					return echo.NewHTTPError(http.StatusUnauthorized,
						"Unauthorised: We've failed to confirm your user information.")
				}

				result, err := provider.Refresh(c.Request().Context(), *user.RefreshToken)
				if err != nil {
					log.Printf("[Auth] Failed to refresh token: %v\n", err)
					return echo.NewHTTPError(http.StatusUnauthorized,
						"Unauthorised: We've failed to renew your session.")
				}

				if err := userRepo.SetRefreshToken(userID, &result.RefreshToken); err != nil {
					log.Printf("[Auth] Failed to store refresh token: %v\n", err)
					return echo.NewHTTPError(http.StatusUnauthorized,
						"Unauthorised: We've failed to renew your session.")
				}

				accessToken = result.AccessToken
				c.SetCookie(NewAccessTokenCookie(accessToken, cookieDomain))
			}

			claims, err := verifier.Verify(accessToken)
			if err != nil {
				log.Printf("[Auth] Failed to validate jwt token: %v\n", err)
				return echo.NewHTTPError(http.StatusUnauthorized,
					"Unauthorised: Your token is invalid.")
			}

			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// NewAccessTokenCookie builds the httpOnly cookie carrying the access
// credential
func NewAccessTokenCookie(accessToken, domain string) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		Domain:   domain,
		MaxAge:   int(accessTokenCookieMaxAge.Seconds()),
		Secure:   true,
		HttpOnly: true,
	}
}

// ClearAccessTokenCookie builds an expired cookie that removes the access
// credential from the client
func ClearAccessTokenCookie(domain string) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
	}
}
