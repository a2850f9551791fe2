// Package token mints and verifies single-use email confirmation tokens.
// A token is an HMAC over the user's id, current password hash and issue
// time, so changing the password invalidates any outstanding token without
// server-side state.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kvitka/hotel-bookings/internal/domain"
)

type Generator struct {
	secret []byte
	ttl    time.Duration
}

func NewGenerator(secret string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), ttl: ttl}
}

// Mint issues a confirmation token for the user.
func (g *Generator) Mint(user *domain.User) string {
	return g.mintAt(user, time.Now())
}

func (g *Generator) mintAt(user *domain.User, issued time.Time) string {
	ts := strconv.FormatInt(issued.Unix(), 36)
	return ts + "-" + g.signature(user, ts)
}

// Verify reports whether the token belongs to the user and has not expired.
func (g *Generator) Verify(user *domain.User, tok string) bool {
	ts, sig, ok := strings.Cut(tok, "-")
	if !ok {
		return false
	}

	issued, err := strconv.ParseInt(ts, 36, 64)
	if err != nil {
		return false
	}
	if time.Since(time.Unix(issued, 0)) > g.ttl {
		return false
	}

	expected := g.signature(user, ts)
	return hmac.Equal([]byte(sig), []byte(expected))
}

func (g *Generator) signature(user *domain.User, ts string) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%d:%s:%s", user.ID, user.PasswordHash, ts)
	return hex.EncodeToString(mac.Sum(nil))
}
