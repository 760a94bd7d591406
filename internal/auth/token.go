package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yukikurage/workout-api/internal/config"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrSecretTooWeak = fmt.Errorf("jwt secret must be at least %d characters", config.MinJWTSecretLength)
)

// Claims carries the principal inside an HS256 access token. The subject is
// the username and uid the numeric user id.
type Claims struct {
	UserID uint64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService mints and verifies access tokens.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService from config.
func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if len(cfg.Secret) < config.MinJWTSecretLength {
		return nil, ErrSecretTooWeak
	}
	ttl := cfg.TTL()
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for p and returns it with its expiry.
func (s *TokenService) Issue(p Principal) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		UserID: p.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        strconv.FormatInt(now.UnixNano(), 36),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Resolve verifies a token and returns the principal it names.
func (s *TokenService) Resolve(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}
	if claims.UserID == 0 || claims.Subject == "" {
		return Principal{}, ErrInvalidToken
	}

	return Principal{ID: claims.UserID, Username: claims.Subject}, nil
}
