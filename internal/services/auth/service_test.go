package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/taskboard/platform/internal/domain/user"
	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/rpc"
	"github.com/taskboard/platform/internal/storage/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	tokens, err := NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return New(memory.New(), tokens, nil)
}

func registerUser(t *testing.T, svc *Service, email string, role user.Role) string {
	t.Helper()
	res, err := svc.Register(context.Background(), rpc.RegisterParams{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return res.UserID
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Register(context.Background(), rpc.RegisterParams{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     user.RoleUser,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Message != "User registered successfully" {
		t.Errorf("unexpected message %q", res.Message)
	}
	if res.UserID == "" {
		t.Error("expected a user id")
	}

	login, err := svc.Login(context.Background(), rpc.LoginParams{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.AccessToken == "" {
		t.Error("expected an access token")
	}
	if login.User.ID != res.UserID {
		t.Errorf("login user id = %q, want %q", login.User.ID, res.UserID)
	}
	if login.User.Role != user.RoleUser {
		t.Errorf("login role = %q, want USER", login.User.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	registerUser(t, svc, "dup@example.com", user.RoleUser)

	_, err := svc.Register(context.Background(), rpc.RegisterParams{
		Name:     "Other",
		Email:    "dup@example.com",
		Password: "different-pass",
		Role:     user.RoleAdmin,
	})
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if se.Message != "User already exists" {
		t.Errorf("unexpected message %q", se.Message)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), rpc.RegisterParams{
		Name:     "",
		Email:    "",
		Password: "short",
		Role:     user.Role("SUPER"),
	})
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(se.Fields) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %v", len(se.Fields), se.Fields)
	}
	for _, f := range se.Fields {
		if f.Field == "password" && f.Message != "Password must be at least 6 characters long" {
			t.Errorf("unexpected password message %q", f.Message)
		}
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)
	registerUser(t, svc, "bob@example.com", user.RoleUser)

	_, unknownErr := svc.Login(context.Background(), rpc.LoginParams{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	_, wrongErr := svc.Login(context.Background(), rpc.LoginParams{
		Email:    "bob@example.com",
		Password: "wrong-password",
	})

	for _, err := range []error{unknownErr, wrongErr} {
		se := errors.GetServiceError(err)
		if se == nil || se.HTTPStatus != http.StatusUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if se.Message != "Invalid credentials! Please check your email and password." {
			t.Errorf("unexpected message %q", se.Message)
		}
	}
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	id := registerUser(t, svc, "carol@example.com", user.RoleAdmin)

	login, err := svc.Login(context.Background(), rpc.LoginParams{
		Email:    "carol@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.VerifyToken(context.Background(), rpc.VerifyTokenParams{Token: login.AccessToken})
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != id {
		t.Errorf("claims user id = %q, want %q", claims.UserID, id)
	}
	if claims.Email != "carol@example.com" || claims.Role != user.RoleAdmin {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	svc := newTestService(t)
	registerUser(t, svc, "dave@example.com", user.RoleUser)

	login, err := svc.Login(context.Background(), rpc.LoginParams{
		Email:    "dave@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.VerifyToken(context.Background(), rpc.VerifyTokenParams{Token: login.AccessToken + "x"})
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if se.Message != "Invalid or Expired Token" {
		t.Errorf("unexpected message %q", se.Message)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	tokens := &TokenIssuer{secret: []byte("test-secret"), expiry: -time.Minute}

	token, err := tokens.Issue(user.User{ID: "u1", Email: "x@example.com", Role: user.RoleUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tokens.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateUserReflectsStore(t *testing.T) {
	svc := newTestService(t)
	id := registerUser(t, svc, "erin@example.com", user.RoleUser)

	pub, err := svc.ValidateUser(context.Background(), rpc.UserIDParams{UserID: id})
	if err != nil {
		t.Fatalf("ValidateUser: %v", err)
	}
	if pub.ID != id || pub.Email != "erin@example.com" {
		t.Errorf("unexpected user %+v", pub)
	}

	_, err = svc.ValidateUser(context.Background(), rpc.UserIDParams{UserID: "missing"})
	se := errors.GetServiceError(err)
	if se == nil || se.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetAllUsersExcludesAdmins(t *testing.T) {
	svc := newTestService(t)
	registerUser(t, svc, "admin@example.com", user.RoleAdmin)
	u1 := registerUser(t, svc, "u1@example.com", user.RoleUser)
	u2 := registerUser(t, svc, "u2@example.com", user.RoleUser)

	users, err := svc.GetAllUsers(context.Background(), struct{}{})
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	got := map[string]bool{}
	for _, u := range users {
		if u.Role != user.RoleUser {
			t.Errorf("unexpected role %q in listing", u.Role)
		}
		got[u.ID] = true
	}
	if !got[u1] || !got[u2] {
		t.Errorf("listing missing expected users: %v", got)
	}
}
