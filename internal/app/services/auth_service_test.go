package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/authentikate/authentikate/internal/app/models"
	"github.com/authentikate/authentikate/internal/pkg/apperrors"
	"github.com/authentikate/authentikate/internal/pkg/auth"
)

func newAuthService(m *memStore) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key-for-auth-service",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "authentikate-test",
	})
	return NewAuthService(fakeAdminStore{m}, fakeDepartmentStore{m}, jwtService, testLogger())
}

func TestSignupAndLogin(t *testing.T) {
	m := newMemStore()
	m.departments[1] = &models.Department{ID: 1, SchoolID: 1, Name: "Computer Science"}
	svc := newAuthService(m)
	ctx := context.Background()

	admin, creds, err := svc.Signup(ctx, "csc_admin", "s3cret-pass", 1)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if admin.ID == 0 {
		t.Error("admin id not assigned")
	}
	if admin.PasswordHash == "s3cret-pass" {
		t.Error("password stored in the clear")
	}
	if creds.Token == "" || creds.ExpiresIn != 3600 {
		t.Errorf("credentials = %+v", creds)
	}

	loggedIn, creds, err := svc.Login(ctx, "csc_admin", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != admin.ID {
		t.Errorf("logged-in admin = %d, want %d", loggedIn.ID, admin.ID)
	}
	if creds.Token == "" {
		t.Error("no token issued on login")
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	m := newMemStore()
	m.departments[1] = &models.Department{ID: 1, SchoolID: 1, Name: "Computer Science"}
	svc := newAuthService(m)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "csc_admin", "s3cret-pass", 1); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	_, _, err := svc.Signup(ctx, "csc_admin", "other-pass-1", 1)
	if !errors.Is(err, apperrors.ErrUsernameAlreadyUsed) {
		t.Errorf("error = %v, want username already used", err)
	}
}

func TestSignupValidation(t *testing.T) {
	m := newMemStore()
	m.departments[1] = &models.Department{ID: 1, SchoolID: 1, Name: "Computer Science"}
	svc := newAuthService(m)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "bad user!", "s3cret-pass", 1); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("bad username error = %v", err)
	}
	if _, _, err := svc.Signup(ctx, "csc_admin", "short", 1); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("short password error = %v", err)
	}
	if _, _, err := svc.Signup(ctx, "csc_admin", "s3cret-pass", 42); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("unknown department error = %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	m := newMemStore()
	m.departments[1] = &models.Department{ID: 1, SchoolID: 1, Name: "Computer Science"}
	svc := newAuthService(m)
	ctx := context.Background()

	if _, _, err := svc.Signup(ctx, "csc_admin", "s3cret-pass", 1); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	// unknown account and wrong password are indistinguishable
	_, _, err := svc.Login(ctx, "nobody", "s3cret-pass")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown account error = %v", err)
	}
	_, _, err = svc.Login(ctx, "csc_admin", "wrong-pass")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
}
