// Package cookie signs the session cookie. The value is an HS256 JWT whose
// jti claim is the opaque server-side session token; the session itself never
// leaves the server.
package cookie

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var ErrNoSession = errors.New("no session cookie")

type Codec struct {
	name   string
	secret []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

func NewCodec(name, secret string, maxAge time.Duration, secure bool) *Codec {
	return &Codec{
		name:   name,
		secret: []byte(secret),
		maxAge: maxAge,
		secure: secure,
		now:    time.Now,
	}
}

// Name returns the cookie name.
func (c *Codec) Name() string {
	return c.name
}

// Issue writes a signed cookie carrying token.
func (c *Codec) Issue(ctx echo.Context, token string) error {
	now := c.now()
	claims := jwt.RegisteredClaims{
		ID:        token,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     c.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(c.maxAge / time.Second),
		Expires:  now.Add(c.maxAge),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read returns the session token carried by the request cookie. A missing,
// tampered or expired cookie yields ErrNoSession.
func (c *Codec) Read(ctx echo.Context) (string, error) {
	ck, err := ctx.Cookie(c.name)
	if err != nil || ck.Value == "" {
		return "", ErrNoSession
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(ck.Value, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil || claims.ID == "" {
		return "", ErrNoSession
	}
	return claims.ID, nil
}

// Clear expires the cookie on the client.
func (c *Codec) Clear(ctx echo.Context) {
	ctx.SetCookie(&http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
