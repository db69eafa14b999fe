package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Principal identidad que viaja en el token. Role va en el token para que el middleware
// de roles decida sin consultar la DB; /auth/verify relee el rol almacenado.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Signer emite y valida tokens HS256 de un único emisor.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	parser *jwt.Parser
}

// NewSigner exige secret. Con issuer vacío no se valida el claim iss.
func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl, parser: jwt.NewParser(opts...)}, nil
}

// Sign firma un token para p que vence tras el TTL del signer.
func (s *Signer) Sign(p Principal) (string, error) {
	if p.UserID == "" {
		return "", fmt.Errorf("jwt: principal sin user id")
	}
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Username: p.Username,
		Role:     p.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify valida firma, algoritmo, vencimiento y emisor. Cualquier fallo envuelve
// ErrInvalidToken.
func (s *Signer) Verify(token string) (Principal, error) {
	var c claims
	parsed, err := s.parser.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || c.Subject == "" {
		return Principal{}, fmt.Errorf("%w: sin subject", ErrInvalidToken)
	}
	return Principal{UserID: c.Subject, Username: c.Username, Role: c.Role}, nil
}
