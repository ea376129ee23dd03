// Package flash carries one-shot notifications ("Venue X was listed!")
// across a redirect.
//
// HOW IT WORKS:
// A write handler calls Add before redirecting. The pending messages are
// stored client-side in an HttpOnly cookie holding a signed JWT:
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Payload: {"msgs":[{"kind":"success","text":"..."}],"iss":"venue-booking","exp":...}
//	- Signature: HMAC-SHA256(header+"."+payload, secret)
//
// The next page render calls Pop, which verifies the token, returns the
// messages and deletes the cookie. Nothing is kept on the server, and a
// client cannot forge or edit a message without the secret.
package flash

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	cookieName = "flash"
	issuer     = "venue-booking"

	// lifetime bounds how long an unread message survives.
	lifetime = 5 * time.Minute

	// maxMessages keeps the cookie well under browser size limits.
	maxMessages = 5
)

// Kinds of message; templates style them differently.
const (
	Success = "success"
	Error   = "error"
)

// Message is one notification.
type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Store signs and verifies flash cookies.
type Store struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// NewStore creates a Store. secure sets the cookie's Secure attribute and
// should be on whenever the site is served over HTTPS.
func NewStore(secret string, secure bool) (*Store, error) {
	if len(secret) < 16 {
		return nil, errors.New("flash: secret must be at least 16 characters")
	}
	return &Store{secret: []byte(secret), secure: secure, now: time.Now}, nil
}

type claims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

// Add queues a message for the next rendered page. Messages already queued
// and not yet shown are kept; the oldest are dropped past maxMessages.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, kind, text string) error {
	msgs := append(s.pending(r), Message{Kind: kind, Text: text})
	if len(msgs) > maxMessages {
		msgs = msgs[len(msgs)-maxMessages:]
	}

	token, err := s.encode(msgs)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(token, int(lifetime.Seconds())))
	return nil
}

// Pop returns the queued messages and clears the cookie. A missing,
// expired or tampered cookie yields no messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if _, err := r.Cookie(cookieName); err != nil {
		return nil
	}
	http.SetCookie(w, s.cookie("", -1))
	return s.pending(r)
}

func (s *Store) pending(r *http.Request) []Message {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}
	msgs, err := s.decode(c.Value)
	if err != nil {
		return nil
	}
	return msgs
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Store) encode(msgs []Message) (string, error) {
	now := s.now()
	c := claims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("flash: signing cookie: %w", err)
	}
	return signed, nil
}

// decode verifies the signature, algorithm, issuer and expiry.
func (s *Store) decode(tokenStr string) ([]Message, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("flash: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("flash: invalid cookie: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, errors.New("flash: invalid cookie claims")
	}
	return c.Messages, nil
}
