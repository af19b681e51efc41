package middleware

import (
	"encoding/json"
	"net/http"

	"cafe-pos/internal/auth"
	"cafe-pos/internal/logger"
	"cafe-pos/internal/staff"
	"cafe-pos/internal/utils"

	"go.uber.org/zap"
)

// AuthMiddleware rejects requests without a valid staff token and stores the
// staff identity in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.Authenticate(r, secret)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("unauthenticated request", zap.String("path", r.URL.Path))
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			ctx := utils.SetStaffContext(r.Context(), claims.StaffID, string(claims.Role))
			ctx = logger.WithStaffID(ctx, claims.StaffID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets through only staff with one of roles. Must run after AuthMiddleware.
func RequireRole(roles ...staff.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := staff.Role(utils.GetStaffRoleFromContext(r.Context()))
			for _, role := range roles {
				if current == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "forbidden")
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
