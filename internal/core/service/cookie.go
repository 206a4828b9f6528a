package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the fixed, well-known cookie carrying the signed
// session id. The bearer credential itself never leaves the server side.
const SessionCookieName = "rh_session"

const defaultCookieTTL = 30 * 24 * time.Hour

// CookieCodec mints and verifies the signed session cookie.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	if ttl <= 0 {
		ttl = defaultCookieTTL
	}
	return &CookieCodec{secret: []byte(secret), ttl: ttl}
}

// Mint returns a session cookie for sid, signed so the browser cannot forge
// or swap session ids.
func (cc *CookieCodec) Mint(sid string) (*http.Cookie, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(cc.ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.secret)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cc.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Parse returns the session id carried by a cookie value. Tampered or
// expired cookies yield an error; callers treat that as no session.
func (cc *CookieCodec) Parse(value string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid session cookie")
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("session cookie missing sid")
	}
	return sid, nil
}

// Drop returns a cookie that instructs the browser to delete the session
// cookie. Used on logout and forced logout.
func (cc *CookieCodec) Drop() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewSessionID generates a fresh random session id. A new id is minted on
// every successful login or registration so sessions cannot be fixated.
func NewSessionID() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
