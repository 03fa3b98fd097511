package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protect(keys ...string) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return WriteProtectAuth(keys)(ok)
}

func TestWriteProtectAuth_NoKeysConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	protect().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, everything passes with no keys", rec.Code)
	}
}

func TestWriteProtectAuth_ReadsPassThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	protect("key").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entities", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, reads are never protected", rec.Code)
	}
}

func TestWriteProtectAuth_MutationsRequireKey(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := httptest.NewRecorder()
		protect("key").ServeHTTP(rec, httptest.NewRequest(method, "/entities/1", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", method, rec.Code)
		}
	}
}

func TestWriteProtectAuth_AcceptsEitherHeader(t *testing.T) {
	bearer := httptest.NewRequest(http.MethodPost, "/items", nil)
	bearer.Header.Set("Authorization", "Bearer key")

	apiKey := httptest.NewRequest(http.MethodDelete, "/entities/1", nil)
	apiKey.Header.Set("X-API-Key", "key")

	for _, req := range []*http.Request{bearer, apiKey} {
		rec := httptest.NewRecorder()
		protect("other", "key").ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s %s: status = %d, want 200", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestWriteProtectAuth_RejectsWrongKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Header.Set("Authorization", "Bearer nope")

	rec := httptest.NewRecorder()
	protect("key").ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
