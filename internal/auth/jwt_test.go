package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/users-generator-api/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       "550e8400-e29b-41d4-a716-446655440000",
		Username: "john.doe123",
		Role:     models.RoleAdmin,
	}
}

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour, NewMemoryRevocations())
	ctx := context.Background()

	token, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	claims, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if claims.UserID != testUser().ID {
		t.Errorf("Expected sub %s, got %s", testUser().ID, claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Expected role admin, got %s", claims.Role)
	}
	if claims.JTI == "" {
		t.Error("Expected a token id")
	}
	if d := time.Until(claims.ExpiresAtTime()); d <= 0 || d > time.Hour {
		t.Errorf("Unexpected expiry in %v", d)
	}
}

func TestManager_WireClaims(t *testing.T) {
	m := NewManager("test-secret", time.Hour, nil)

	token, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	claims, err := m.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}

	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, raw); err != nil {
		t.Fatalf("ParseUnverified() failed: %v", err)
	}

	if raw["sub"] != testUser().ID {
		t.Errorf("Expected sub %s on the wire, got %v", testUser().ID, raw["sub"])
	}
	if raw["jti"] != claims.JTI {
		t.Errorf("Expected jti %s on the wire, got %v", claims.JTI, raw["jti"])
	}
	for _, key := range []string{"role", "iat", "exp"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected %s claim on the wire", key)
		}
	}
	if len(raw) != 5 {
		t.Errorf("Expected exactly sub, role, jti, iat, exp, got %v", raw)
	}
}

func TestManager_UniqueTokenIDs(t *testing.T) {
	m := NewManager("test-secret", time.Hour, nil)
	ctx := context.Background()

	a, _ := m.Issue(testUser())
	b, _ := m.Issue(testUser())
	ca, _ := m.Verify(ctx, a)
	cb, _ := m.Verify(ctx, b)
	if ca.JTI == cb.JTI {
		t.Error("Two tokens for the same user must have different ids")
	}
}

func TestManager_VerifyRejects(t *testing.T) {
	ctx := context.Background()
	m := NewManager("test-secret", time.Hour, nil)
	valid, _ := m.Issue(testUser())

	expired, _ := NewManager("test-secret", -time.Minute, nil).Issue(testUser())
	otherSecret, _ := NewManager("other-secret", time.Hour, nil).Issue(testUser())

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: testUser().ID,
		JTI:    "abc",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	wrongAlg, _ := hs512.SignedString([]byte("test-secret"))

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: testUser().ID, JTI: "abc"})
	missingExp, _ := noExp.SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered", valid + "x"},
		{"expired", expired},
		{"wrong secret", otherSecret},
		{"wrong algorithm", wrongAlg},
		{"missing expiry", missingExp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(ctx, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestManager_Revoke(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocations()
	m := NewManager("test-secret", time.Hour, store)

	token, _ := m.Issue(testUser())
	claims, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}

	if err := m.Revoke(ctx, claims); err != nil {
		t.Fatalf("Revoke() failed: %v", err)
	}
	if _, err := m.Verify(ctx, token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Expected ErrTokenRevoked after revoke, got %v", err)
	}

	// other tokens for the same user stay valid
	other, _ := m.Issue(testUser())
	if _, err := m.Verify(ctx, other); err != nil {
		t.Errorf("Unrelated token should still verify: %v", err)
	}

	if err := m.Revoke(ctx, nil); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Revoke(nil) = %v, want ErrInvalidToken", err)
	}
}
