package token

import (
	"testing"
	"time"

	"github.com/kvitka/hotel-bookings/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: 42, Email: "rick@test.com", PasswordHash: "argon2id$hash"}
}

func TestMintVerifyRoundtrip(t *testing.T) {
	g := NewGenerator("secret", 2*time.Hour)
	user := testUser()

	tok := g.Mint(user)
	if !g.Verify(user, tok) {
		t.Fatal("freshly minted token failed to verify")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	g := NewGenerator("secret", 2*time.Hour)
	user := testUser()

	tok := g.Mint(user)
	tampered := tok[:len(tok)-1] + "x"
	if tampered == tok {
		tampered = tok[:len(tok)-1] + "y"
	}
	if g.Verify(user, tampered) {
		t.Error("tampered token verified")
	}
}

func TestVerifyRejectsOtherUser(t *testing.T) {
	g := NewGenerator("secret", 2*time.Hour)
	user := testUser()
	other := &domain.User{ID: 43, Email: "morty@test.com", PasswordHash: "argon2id$hash"}

	tok := g.Mint(user)
	if g.Verify(other, tok) {
		t.Error("token minted for one user verified for another")
	}
}

func TestPasswordChangeInvalidatesToken(t *testing.T) {
	g := NewGenerator("secret", 2*time.Hour)
	user := testUser()

	tok := g.Mint(user)
	user.PasswordHash = "argon2id$newhash"
	if g.Verify(user, tok) {
		t.Error("token survived a password change")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	g := NewGenerator("secret", 2*time.Hour)
	user := testUser()

	tok := g.mintAt(user, time.Now().Add(-3*time.Hour))
	if g.Verify(user, tok) {
		t.Error("expired token verified")
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	g := NewGenerator("secret", 2*time.Hour)
	user := testUser()

	for _, bad := range []string{"", "nodash", "-", "zzz-", "not_base36-abcdef"} {
		if g.Verify(user, bad) {
			t.Errorf("malformed token %q verified", bad)
		}
	}
}

func TestVerifyRejectsDifferentSecret(t *testing.T) {
	user := testUser()
	tok := NewGenerator("secret-a", 2*time.Hour).Mint(user)
	if NewGenerator("secret-b", 2*time.Hour).Verify(user, tok) {
		t.Error("token verified across secrets")
	}
}
