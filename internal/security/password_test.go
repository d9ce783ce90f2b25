package security

import (
	"errors"
	"strings"
	"testing"
)

func newTestHasher() *Argon2idHasher {
	return NewArgon2idHasher(Argon2Params{Time: 1, Memory: 8 * 1024, Threads: 1})
}

func TestHashAndVerifyPassword(t *testing.T) {
	h := newTestHasher()
	hash, err := h.Hash("Stronger#Pass123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected encoded hash %q", hash)
	}
	ok, err := h.Verify(hash, "Stronger#Pass123")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Fatal("expected password verification success")
	}
	ok, err = h.Verify(hash, "wrong-pass")
	if err != nil {
		t.Fatalf("verify wrong password errored: %v", err)
	}
	if ok {
		t.Fatal("expected password verification failure")
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	h := newTestHasher()
	a, err := h.Hash("same")
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	b, err := h.Hash("same")
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h := newTestHasher()
	for _, encoded := range []string{
		"",
		"plaintext",
		"$2y$10$abcdefghijklmnopqrstuv",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
	} {
		if _, err := h.Verify(encoded, "pw"); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}

func TestNewArgon2idHasherFillsDefaults(t *testing.T) {
	h := NewArgon2idHasher(Argon2Params{})
	if h.params != DefaultArgon2Params() {
		t.Fatalf("expected defaults, got %+v", h.params)
	}
}
