package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/tableorderhq/tableorder/internal/common"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("u-1", "owner@example.com", secret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := VerifyToken(token, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "owner@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("u-1", "owner@example.com", []byte("a"), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := VerifyToken(token, []byte("b")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken("u-1", "owner@example.com", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := VerifyToken(token, secret); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	if _, err := VerifyToken("not-a-token", []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword(hash, "hunter2!") {
		t.Fatal("expected password to match its hash")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected mismatch for wrong password")
	}
}
