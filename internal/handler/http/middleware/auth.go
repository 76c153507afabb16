package middleware

import (
	"context"
	"net/http"

	"github.com/ems-labs/ems-backend-go/internal/domain/auth"
	"github.com/ems-labs/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// AuthRequired rejects requests whose context carries no verified access
// token. Refresh tokens are only good for the refresh endpoint, so a verified
// token without the access type claim is turned away here as well.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if err := requireAccessToken(r.Context(), token); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requireAccessToken(ctx context.Context, token jwt.Token) error {
	if token == nil {
		return auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.ErrInvalidToken
	}

	if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
		return auth.ErrInvalidToken
	}

	return nil
}
