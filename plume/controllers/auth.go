// plume/controllers/auth.go
package controllers

import (
	"context"

	"plume/plume/apierrors"
	"plume/plume/auth"
	"plume/plume/config"
	"plume/plume/schemas"
	"plume/plume/sources/psql/dao"
	"plume/plume/types"

	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	users *dao.UserDAO
	cfg   config.Config
}

func NewAuthController(users *dao.UserDAO, cfg config.Config) *AuthController {
	return &AuthController{users: users, cfg: cfg}
}

// Register creates a user with the "@"-prefixed username and a bcrypt
// password hash, rejecting duplicate emails and usernames.
func (c *AuthController) Register(ctx context.Context, req types.RegisterRequest) (*types.RegisterResponse, error) {
	if err := apierrors.Validation(schemas.ValidateRegister(req)); err != nil {
		return nil, err
	}

	username := "@" + req.Username

	byEmail, err := c.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if byEmail != nil {
		return nil, &apierrors.ConflictError{Message: "Ya existe un usuario registrado con ese email"}
	}

	byUsername, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if byUsername != nil {
		return nil, &apierrors.ConflictError{Message: "Ese nombre de usuario ya está en uso, intenta con otro"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := c.users.CreateUser(ctx, req.Email, username, string(hashed))
	if err != nil {
		return nil, err
	}

	return &types.RegisterResponse{
		User: types.UserResponse{ID: user.ID, Email: user.Email, Username: user.Username},
	}, nil
}

// Login verifies the password against the stored hash and issues an identity
// token embedding id/username/email.
func (c *AuthController) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	if err := apierrors.Validation(schemas.ValidateLogin(req)); err != nil {
		return nil, err
	}

	user, err := c.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.NotFound("Usuario no encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, &apierrors.AuthError{
			Errors: []apierrors.FieldError{{Field: "password", Message: "Contraseña incorrecta"}},
		}
	}

	token, err := auth.Issue(user.ID, user.Username, user.Email, []byte(c.cfg.JWTSecret), c.cfg.JWTExpiry)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{
		User: types.LoginUser{ID: user.ID, Username: user.Username, Email: user.Email, Token: token},
	}, nil
}
