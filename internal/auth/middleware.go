package auth

import (
	"net/http"
	"strings"
)

// Middleware validates bearer tokens on incoming requests. Requests without
// an Authorization header pass through anonymously — the catalog is readable
// without an account — while requests presenting a token must present a
// valid one. Per-operation authorization happens in the domain layer.
type Middleware struct {
	Config Config
}

// NewMiddleware constructs a Middleware with validation config.
func NewMiddleware(cfg Config) Middleware {
	return Middleware{Config: cfg}
}

// Wrap attaches authentication handling to an http.Handler.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.parseHeader(header)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		ctx := WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m Middleware) parseHeader(header string) (*Claims, error) {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return nil, ErrInvalidToken
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return Parse(token, m.Config)
}
