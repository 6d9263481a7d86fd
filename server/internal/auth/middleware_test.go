package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// passHandler answers 200 "ok".
var passHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok")) //nolint:errcheck
})

func call(t *testing.T, h http.Handler, path, header, key string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set(header, key)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAPIKey_ModeNone_PassesThrough(t *testing.T) {
	h := APIKey("none", "X-API-Key", "secret", passHandler)
	// No key on the request; should still pass because mode != "apikey".
	if rr := call(t, h, "/api/v1/kpis", "", ""); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestAPIKey_EmptyKey_PassesThrough(t *testing.T) {
	// key="" means auth is not configured → allow all.
	h := APIKey("apikey", "X-API-Key", "", passHandler)
	if rr := call(t, h, "/api/v1/kpis", "", ""); rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestAPIKey(t *testing.T) {
	h := APIKey("apikey", "X-API-Key", "supersecret", passHandler, "/api/v1/health")

	cases := []struct {
		name string
		path string
		key  string
		want int
	}{
		{"correct key", "/api/v1/kpis", "supersecret", http.StatusOK},
		{"wrong key", "/api/v1/kpis", "nope", http.StatusUnauthorized},
		{"missing key", "/api/v1/kpis", "", http.StatusUnauthorized},
		{"prefix of key", "/api/v1/kpis", "supersecre", http.StatusUnauthorized},
		{"exempt path", "/api/v1/health", "", http.StatusOK},
		{"query param", "/ws?api_key=supersecret", "", http.StatusOK},
		{"wrong query param", "/ws?api_key=bad", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := call(t, h, tc.path, "X-API-Key", tc.key)
			if rr.Code != tc.want {
				t.Errorf("status: got %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

func TestAPIKey_UnauthorizedBodyIsJSON(t *testing.T) {
	h := APIKey("apikey", "X-API-Key", "k", passHandler)
	rr := call(t, h, "/api/v1/kpis", "", "")
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}
	if rr.Body.String() != "{\"error\":\"invalid api key\"}\n" {
		t.Errorf("body: got %q", rr.Body.String())
	}
}
