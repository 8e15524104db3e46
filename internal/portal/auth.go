package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/set-night/o2ledger/internal/config"
	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/service"
)

var errUnauthorized = errors.New("user not authenticated")

type principalKey struct{}

// IssueToken signs a portal bearer token for a login user id.
func IssueToken(secret []byte, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    config.TokenIssuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticator verifies bearer tokens and resolves their subject to a
// principal.
type Authenticator struct {
	secret     []byte
	principals *service.PrincipalService
	parser     *jwt.Parser
}

func NewAuthenticator(secret []byte, principals *service.PrincipalService) *Authenticator {
	return &Authenticator{
		secret:     secret,
		principals: principals,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(config.TokenIssuer),
			jwt.WithLeeway(config.TokenLeeway),
			jwt.WithExpirationRequired(),
		),
	}
}

// UserID returns the login user id carried by a valid token.
func (a *Authenticator) UserID(raw string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := a.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject: %w", err)
	}
	return id, nil
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, errUnauthorized.Error())
			return
		}

		userID, err := a.UserID(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, errUnauthorized.Error())
			return
		}

		p, err := a.principals.Resolve(r.Context(), userID)
		if errors.Is(err, domain.ErrUnknownPrincipal) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ctx := context.WithValue(r.Context(), principalKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func principalFrom(ctx context.Context) domain.Principal {
	p, _ := ctx.Value(principalKey{}).(domain.Principal)
	return p
}
