package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Minute)

	token, err := manager.Generate("customer-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.CustomerID != "customer-1" {
		t.Fatalf("expected customer-1, got %q", claims.CustomerID)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate("customer-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Minute)
	verifier := NewJWTManager("secret-b", time.Minute)

	token, err := issuer.Generate("customer-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Minute)
	if _, err := manager.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateMissingCustomerID(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Minute)
	token, err := manager.Generate("")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty customer id, got %v", err)
	}
}
