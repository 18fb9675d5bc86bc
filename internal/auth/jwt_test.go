package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-123", true, false)

	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.VerifyToken(token)

	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if claims.UserID() != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID(), "user-123")
	}

	if !claims.IsHost {
		t.Error("IsHost = false, want true")
	}

	if claims.IsAdmin {
		t.Error("IsAdmin = true, want false")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateToken("user-123", false, false)

	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = NewManager("secret-b", time.Hour).VerifyToken(token)

	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenTampered(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("user-123", false, true)

	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parts := strings.Split(token, ".")

	if len(parts) != 3 {
		t.Fatalf("token has %d parts, want 3", len(parts))
	}

	// flip a character in the payload segment
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}

	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.VerifyToken(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.GenerateToken("user-123", false, false)

	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := m.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.VerifyToken(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyToken(%q) err = %v, want ErrInvalidToken", raw, err)
		}
	}
}
