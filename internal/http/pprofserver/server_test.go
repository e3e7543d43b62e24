package pprofserver

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teapot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func pprofRequest(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "http://example/debug/pprof/", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestGuard_AllowsLoopbackWithoutAuth(t *testing.T) {
	h := guard(http.HandlerFunc(teapot), Config{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, pprofRequest("127.0.0.1:12345"))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestGuard_NonLoopback_EmptyCreds_Unauthorized(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})
	h := guard(next, Config{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, pprofRequest("8.8.8.8:54444"))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
}

func TestGuard_NonLoopback_WrongCreds_Unauthorized(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})
	h := guard(next, Config{User: "u", Pass: "p"})

	req := pprofRequest("8.8.8.8:54444")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("u:WRONG")))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
}

func TestGuard_NonLoopback_CorrectCreds_Allows(t *testing.T) {
	h := guard(http.HandlerFunc(teapot), Config{User: "u", Pass: "p"})

	req := pprofRequest("8.8.8.8:54444")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("u:p")))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestHandler_ServesIndexOnLoopback(t *testing.T) {
	h := Handler(Config{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, pprofRequest("127.0.0.1:9"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "pprof")
}

func TestIsLoopback(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"127.0.0.1:123", true},
		{"127.0.0.1", true},
		{" 127.0.0.1 ", true},
		{"[::1]:123", true},
		{"8.8.8.8:1", false},
		{"not-an-ip:1", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isLoopback(tc.in), "isLoopback(%q)", tc.in)
	}
}

func TestSecureEq(t *testing.T) {
	assert.False(t, secureEq("a", "ab"))
	assert.True(t, secureEq("abc", "abc"))
	assert.False(t, secureEq("abc", "abd"))
}
