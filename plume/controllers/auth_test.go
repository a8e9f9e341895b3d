package controllers

import (
	"context"
	"errors"
	"testing"

	"plume/plume/apierrors"
	"plume/plume/auth"
	"plume/plume/types"
)

func TestRegister_PrefixesUsername(t *testing.T) {
	env := setupTestEnv(t)

	user := env.registerUser(t, "a@b.com", "alice")
	if user.Username != "@alice" {
		t.Errorf("expected stored username @alice, got %q", user.Username)
	}
	if user.Email != "a@b.com" {
		t.Errorf("unexpected email %q", user.Email)
	}
	if user.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "a@b.com", "alice")

	_, err := env.auth.Register(context.Background(), types.RegisterRequest{
		Email: "a@b.com", Password: "Abcd123!", Username: "alice2",
	})
	var conflict *apierrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Message != "Ya existe un usuario registrado con ese email" {
		t.Errorf("unexpected message %q", conflict.Message)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "a@b.com", "alice")

	_, err := env.auth.Register(context.Background(), types.RegisterRequest{
		Email: "c@d.com", Password: "Abcd123!", Username: "alice",
	})
	var conflict *apierrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Message != "Ese nombre de usuario ya está en uso, intenta con otro" {
		t.Errorf("unexpected message %q", conflict.Message)
	}
}

func TestRegister_ValidationErrors(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.auth.Register(context.Background(), types.RegisterRequest{
		Email: "bad", Password: "short", Username: "no spaces",
	})
	var validation *apierrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Errors) < 3 {
		t.Errorf("expected all violations collected, got %v", validation.Errors)
	}
}

func TestLogin_Success(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "a@b.com", "alice")

	res, err := env.auth.Login(context.Background(), types.LoginRequest{
		Email: "a@b.com", Password: "Abcd123!",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := auth.Verify(res.User.Token, []byte(env.cfg.JWTSecret))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Username != "@alice" || claims.Email != "a@b.com" || claims.ID != res.User.ID {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "a@b.com", "alice")

	_, err := env.auth.Login(context.Background(), types.LoginRequest{
		Email: "a@b.com", Password: "Wrong123!",
	})
	var authErr *apierrors.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if len(authErr.Errors) != 1 || authErr.Errors[0].Field != "password" || authErr.Errors[0].Message != "Contraseña incorrecta" {
		t.Errorf("expected field-scoped password error, got %+v", authErr.Errors)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.auth.Login(context.Background(), types.LoginRequest{
		Email: "ghost@b.com", Password: "Abcd123!",
	})
	var notFound *apierrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
