package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brightgive/donorcrm-backend/internal/data/repos"
	types "github.com/brightgive/donorcrm-backend/internal/domain"
	"github.com/brightgive/donorcrm-backend/internal/pkg/crmerr"
	"github.com/brightgive/donorcrm-backend/internal/requestdata"
	"github.com/brightgive/donorcrm-backend/internal/services"
)

func newAuthService(t *testing.T, e *env) services.AuthService {
	t.Helper()
	userRepo := repos.NewUserRepo(e.tx, e.log)
	return services.NewAuthService(e.tx, e.log, userRepo, "test-jwt-secret", time.Hour)
}

func TestAuthRegisterLoginRoundTrip(t *testing.T) {
	e := newEnv(t)
	auth := newAuthService(t, e)

	user, err := auth.Register(context.Background(), &types.User{
		Email:     "Jo@Test.Local",
		Password:  "hunter22",
		FirstName: "Jo",
		LastName:  "Tester",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "jo@test.local" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.Password == "hunter22" {
		t.Error("password stored in plaintext")
	}

	token, _, err := auth.Login(context.Background(), "jo@test.local", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	ctx, err := auth.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID != user.ID || rd.UserEmail != "jo@test.local" {
		t.Errorf("request data = %+v, want user %s", rd, user.ID)
	}
}

func TestAuthRejectsDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	auth := newAuthService(t, e)

	if _, err := auth.Register(context.Background(), &types.User{Email: "dup@test.local", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := auth.Register(context.Background(), &types.User{Email: "dup@test.local", Password: "pw2"})
	if !errors.Is(err, crmerr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAuthRejectsWrongPassword(t *testing.T) {
	e := newEnv(t)
	auth := newAuthService(t, e)

	if _, err := auth.Register(context.Background(), &types.User{Email: "pw@test.local", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := auth.Login(context.Background(), "pw@test.local", "wrong"); !errors.Is(err, crmerr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, _, err := auth.Login(context.Background(), "nobody@test.local", "x"); !errors.Is(err, crmerr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown email, got %v", err)
	}
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	e := newEnv(t)
	auth := newAuthService(t, e)

	if _, err := auth.SetContextFromToken(context.Background(), "not.a.token"); !errors.Is(err, crmerr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	other := services.NewAuthService(e.tx, e.log, repos.NewUserRepo(e.tx, e.log), "different-secret", time.Hour)
	if _, err := other.Register(context.Background(), &types.User{Email: "sig@test.local", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := other.Login(context.Background(), "sig@test.local", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := auth.SetContextFromToken(context.Background(), token); !errors.Is(err, crmerr.ErrUnauthorized) {
		t.Fatalf("token signed with another secret accepted: %v", err)
	}
}
