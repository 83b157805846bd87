package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/influence-hq/influence/internal/database"
)

// Integration tests against a real database; skipped when DATABASE_URL is unset.
func testDB(t *testing.T) *database.DB {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	db, err := database.Connect(dbURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSignupAndLogin(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	ctx := context.Background()

	email := fmt.Sprintf("auth-test-%d@example.com", time.Now().UnixNano())

	user, err := svc.Signup(ctx, "Test User", email, "pass123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatal("password stored in plaintext")
	}

	if _, err := svc.Signup(ctx, "Test User", email, "pass123"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate signup error = %v, want ErrEmailTaken", err)
	}

	got, err := svc.Login(ctx, email, "pass123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("login returned user %s, want %s", got.ID, user.ID)
	}

	if _, err := svc.Login(ctx, email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "pass123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignup_Validation(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	if _, err := svc.Signup(context.Background(), "", "a@b.c", "pass"); err == nil {
		t.Error("expected validation error for empty full_name")
	}
	if _, err := svc.Signup(context.Background(), "Name", "", "pass"); err == nil {
		t.Error("expected validation error for empty email")
	}
}
