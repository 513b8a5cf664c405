package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prince-yn/study-space-backend/internal/adapters/driven/auth"
	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven/mocks"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
)

func setupAuthService() (driving.AuthService, *mocks.MockUserStore, *mocks.MockSessionStore) {
	userStore := mocks.NewMockUserStore()
	sessionStore := mocks.NewMockSessionStore()
	adapter := auth.NewAdapterWithCost("test-secret", 4)
	svc := NewAuthService(userStore, sessionStore, adapter)
	return svc, userStore, sessionStore
}

func TestRegister(t *testing.T) {
	svc, userStore, _ := setupAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "Student@Example.com",
		Password: "secret123",
		Name:     "Student One",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User == nil || resp.User.Email != "student@example.com" {
		t.Errorf("expected lowercased email, got %+v", resp.User)
	}
	if resp.User.Role != domain.RoleMember {
		t.Errorf("expected member role, got %s", resp.User.Role)
	}

	// Password hash must be stored, never the plaintext
	user, err := userStore.GetByEmail(ctx, "student@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Error("expected bcrypt hash to be stored")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := setupAuthService()
	ctx := context.Background()

	req := domain.RegisterRequest{Email: "dup@example.com", Password: "pw123456", Name: "Dup"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(ctx, req)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, _, _ := setupAuthService()

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Email: "a@b.c"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := setupAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email: "login@example.com", Password: "pw123456", Name: "Login",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.Authenticate(ctx, domain.LoginRequest{
		Email: "login@example.com", Password: "pw123456",
	})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("expected token and refresh token")
	}
	if resp.ExpiresAt.Before(time.Now()) {
		t.Error("expected future expiry")
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, _, _ := setupAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, domain.RegisterRequest{
		Email: "user@example.com", Password: "correct-pw", Name: "User",
	})

	_, err := svc.Authenticate(ctx, domain.LoginRequest{
		Email: "user@example.com", Password: "wrong-pw",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	svc, _, _ := setupAuthService()

	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	svc, userStore, _ := setupAuthService()
	ctx := context.Background()

	_, _ = svc.Register(ctx, domain.RegisterRequest{
		Email: "inactive@example.com", Password: "pw123456", Name: "Inactive",
	})

	user, _ := userStore.GetByEmail(ctx, "inactive@example.com")
	user.Active = false
	_ = userStore.Save(ctx, user)

	_, err := svc.Authenticate(ctx, domain.LoginRequest{
		Email: "inactive@example.com", Password: "pw123456",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	svc, _, _ := setupAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, domain.RegisterRequest{
		Email: "valid@example.com", Password: "pw123456", Name: "Valid",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	authCtx, err := svc.ValidateToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if authCtx.Email != "valid@example.com" {
		t.Errorf("unexpected auth context: %+v", authCtx)
	}
	if authCtx.SessionID == "" {
		t.Error("expected session ID in auth context")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc, _, _ := setupAuthService()

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_SessionGone(t *testing.T) {
	svc, _, sessionStore := setupAuthService()
	ctx := context.Background()

	resp, _ := svc.Register(ctx, domain.RegisterRequest{
		Email: "gone@example.com", Password: "pw123456", Name: "Gone",
	})

	authCtx, err := svc.ValidateToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	_ = sessionStore.Delete(ctx, authCtx.SessionID)

	_, err = svc.ValidateToken(ctx, resp.Token)
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	svc, _, _ := setupAuthService()
	ctx := context.Background()

	resp, _ := svc.Register(ctx, domain.RegisterRequest{
		Email: "refresh@example.com", Password: "pw123456", Name: "Refresh",
	})

	refreshed, err := svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("expected a rotated refresh token")
	}

	// Old refresh token is single-use
	_, err = svc.RefreshToken(ctx, domain.RefreshRequest{RefreshToken: resp.RefreshToken})
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for reused refresh token, got %v", err)
	}

	// New token remains valid
	if _, err := svc.ValidateToken(ctx, refreshed.Token); err != nil {
		t.Errorf("expected refreshed token to validate: %v", err)
	}
}

func TestLogout(t *testing.T) {
	svc, _, _ := setupAuthService()
	ctx := context.Background()

	resp, _ := svc.Register(ctx, domain.RegisterRequest{
		Email: "logout@example.com", Password: "pw123456", Name: "Logout",
	})

	authCtx, err := svc.ValidateToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if err := svc.Logout(ctx, authCtx.SessionID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, resp.Token); err == nil {
		t.Error("expected token to be invalid after logout")
	}
}
