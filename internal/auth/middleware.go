package auth

import (
	"context"
	"net/http"
	"strings"

	httperrors "github.com/openquiz/livequiz/pkg/http/errors"
)

type claimsKey struct{}

// Require wraps a handler with Bearer token verification for the given role.
func Require(mgr *Manager, role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Bearer token required")
			return
		}

		claims, err := mgr.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, err.Error())
			return
		}
		if claims.Role != role {
			httperrors.RespondForbidden(w, httperrors.ErrCodeForbidden, "wrong token role for this endpoint")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	}
}

// ClaimsFromContext returns the verified claims set by Require.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}
