package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/identity"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/token"
)

var bearerRegex = regexp.MustCompile(`^Bearer\s+(\S+)$`)

// JWTAuthenticator is middleware that validates bearer tokens
type JWTAuthenticator struct {
	Signer *token.Signer
}

// NewJWTAuthenticator creates a new JWT authenticator middleware
func NewJWTAuthenticator(signer *token.Signer) *JWTAuthenticator {
	return &JWTAuthenticator{Signer: signer}
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// stores the caller's Identity in the request context.
func (j *JWTAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			unauthorized(w, "Authorization missing")
			return
		}

		tokenMatches := bearerRegex.FindStringSubmatch(authHeader)
		if len(tokenMatches) != 2 {
			unauthorized(w, "Malformed authorization header")
			return
		}

		claims, err := j.Signer.Parse(tokenMatches[1])
		if err != nil {
			unauthorized(w, "Invalid token")
			return
		}

		id, err := identity.FromClaims(claims)
		if err != nil {
			unauthorized(w, "Invalid token")
			return
		}
		id.WithRemoteIP(ClientIP(r)).WithRequestID(RequestIDFrom(r.Context()))

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

// ClientIP returns the first X-Forwarded-For address, falling back to the
// connection's remote address.
func ClientIP(r *http.Request) net.IP {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

func unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, fault.CodePermission, message)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
}
