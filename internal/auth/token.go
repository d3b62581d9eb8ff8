package auth

import (
	"strconv"
	"strings"
	"time"

	apperrors "protest-tracker/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "protest-tracker"

type Claims struct {
	OrganizerID int64  `json:"organizer_id"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

type TokenIssuer interface {
	Sign(organizerID int64, email string) (string, error)
	Verify(token string) (*Claims, error)
}

type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) TokenIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *JWTIssuer) Sign(organizerID int64, email string) (string, error) {
	now := i.now()
	claims := &Claims{
		OrganizerID: organizerID,
		Email:       email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(organizerID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify returns ErrMissingToken for a blank token and ErrInvalidToken for anything
// that fails signature, expiry or issuer checks.
func (i *JWTIssuer) Verify(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.OrganizerID <= 0 {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// TokenFromHeader extracts the token from an "Authorization: Bearer <token>" value.
func TokenFromHeader(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", apperrors.ErrMissingToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", apperrors.ErrInvalidToken
	}
	return parts[1], nil
}
