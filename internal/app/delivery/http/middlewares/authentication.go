package middlewares

import (
	"context"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/exceptions"
	"curebird-service/internal/pkg/utils"
	"net/http"
	"strings"
)

// Authenticate resolves the bearer token to a live portal session and places
// the session id and raw session data in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		sessionID, err := m.SessionService.VerifySessionToken(r.Context(), token)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		sessionData, err := m.SessionService.GetSessionData(r.Context(), sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_ID_KEY, sessionID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_DATA_KEY, sessionData)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
