package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Token verification failures the guard tells apart.
var (
	ErrTokenInvalid = errors.New("token is not valid")
	ErrTokenExpired = errors.New("token is expired")
)

const tokenTTL = 7 * 24 * time.Hour

// Claims carried inside an identity token. Only the subject's email; role
// checks are business rules and live in the service layer.
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// TokenService issues and verifies signed identity assertions. The signing
// key is process-wide configuration, loaded once at startup.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue signs a token asserting the given email, expiring in seven days.
func (ts *TokenService) Issue(email string) (string, error) {
	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// Verify parses a token and returns the asserted email. Expired tokens are
// reported distinctly from malformed or badly signed ones.
func (ts *TokenService) Verify(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return ts.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}

// IssueAt is like Issue but with an explicit issue time. Used by tests to
// mint already-expired tokens.
func (ts *TokenService) IssueAt(email string, issuedAt time.Time) (string, error) {
	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: issuedAt.Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}
