package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// requirePassword gates API routes behind the shared password. The password
// is accepted as "Authorization: Bearer <password>" or in the X-Password
// header and compared in constant time. An empty configured password
// disables the gate for local use.
func (s *Server) requirePassword(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := s.cfg.Server.Password
		if want == "" {
			next.ServeHTTP(w, r)
			return
		}

		got := passwordFrom(r)
		if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			respondError(w, http.StatusUnauthorized, "password incorrect")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// passwordFrom pulls the presented password from the request headers.
func passwordFrom(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if pw, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return pw
		}
	}
	return r.Header.Get("X-Password")
}
