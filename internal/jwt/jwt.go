package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 30 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

type claims struct {
	Type string `json:"typ"`
	jwtlib.RegisteredClaims
}

// JWT signs and parses HS256 tokens whose subject is a session ID.
type JWT struct {
	secret []byte
	now    func() time.Time
}

func NewJWT(secret string) *JWT {
	return &JWT{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (this *JWT) GenerateAccessToken(sessionID string) (string, error) {
	return this.generate(sessionID, tokenTypeAccess, AccessTokenTTL)
}

func (this *JWT) GenerateRefreshToken(sessionID string) (string, error) {
	return this.generate(sessionID, tokenTypeRefresh, RefreshTokenTTL)
}

func (this *JWT) ParseAccessToken(token string) (string, error) {
	return this.parse(token, tokenTypeAccess)
}

func (this *JWT) ParseRefreshToken(token string) (string, error) {
	return this.parse(token, tokenTypeRefresh)
}

func (this *JWT) generate(sessionID string, tokenType string, ttl time.Duration) (string, error) {
	now := this.now()
	token := jwtlib.NewWithClaims(
		jwtlib.SigningMethodHS256,
		claims{
			Type: tokenType,
			RegisteredClaims: jwtlib.RegisteredClaims{
				Subject:   sessionID,
				IssuedAt:  jwtlib.NewNumericDate(now),
				ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			},
		},
	)
	return token.SignedString(this.secret)
}

func (this *JWT) parse(token string, tokenType string) (string, error) {
	var parsed claims
	_, err := jwtlib.ParseWithClaims(
		token,
		&parsed,
		func(t *jwtlib.Token) (interface{}, error) {
			return this.secret, nil
		},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(this.now),
	)
	if err != nil {
		return "", err
	}

	if parsed.Type != tokenType {
		return "", ErrWrongTokenType
	}

	return parsed.Subject, nil
}
