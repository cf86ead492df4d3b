package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCheck(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() failed: %v", err)
	}
	if hash == "secret1" || !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("Expected a bcrypt hash, got %q", hash)
	}

	ok, err := h.Check(hash, "secret1")
	if err != nil || !ok {
		t.Errorf("Check() with the right password = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = h.Check(hash, "secret2")
	if err != nil || ok {
		t.Errorf("Check() with a wrong password = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	ok, err := h.Check("not-a-hash", "secret1")
	if ok || err == nil {
		t.Errorf("Expected an error for a malformed hash, got (%v, %v)", ok, err)
	}
}

func TestNewHasher_CostBounds(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{bcrypt.MinCost, bcrypt.MinCost},
		{12, 12},
		{0, bcrypt.DefaultCost},
		{bcrypt.MaxCost + 1, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		if got := NewHasher(tt.in).cost; got != tt.want {
			t.Errorf("NewHasher(%d).cost = %d, want %d", tt.in, got, tt.want)
		}
	}
}
