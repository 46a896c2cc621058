package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"expensehub/internal"
)

// JWTCodec signs and validates HS256 session tokens. The secret is injected
// once at construction from startup config, never read per request.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = internal.DefaultTokenTTL
	}
	return &JWTCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (c *JWTCodec) Issue(claims *Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(claims.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *JWTCodec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, internal.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, internal.ErrTokenMalformed
		default:
			return nil, internal.ErrTokenInvalid
		}
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, internal.ErrTokenInvalid
}
