package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// WriteProtectAuth guards mutating methods (POST, PUT, PATCH, DELETE)
// behind an API key carried in the Authorization header as a Bearer
// token or in X-API-Key. Read methods pass through. With no keys
// configured, everything passes through.
func WriteProtectAuth(apiKeys []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(apiKeys) == 0 || !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := requestKey(r)
			for _, valid := range apiKeys {
				if subtle.ConstantTimeCompare([]byte(key), []byte(valid)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			WriteJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "invalid or missing API key",
			})
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func requestKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.Header.Get("X-API-Key")
}
