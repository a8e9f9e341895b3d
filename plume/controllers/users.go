// plume/controllers/users.go
package controllers

import (
	"context"

	"plume/plume/apierrors"
	"plume/plume/schemas"
	"plume/plume/sources/psql/dao"
	"plume/plume/types"
)

type UsersController struct {
	users *dao.UserDAO
}

func NewUsersController(users *dao.UserDAO) *UsersController {
	return &UsersController{users: users}
}

// GetByUsername is an exact-match lookup, @ prefix included.
func (c *UsersController) GetByUsername(ctx context.Context, username string) (*types.UserResponse, error) {
	user, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.NotFound("Usuario no encontrado")
	}
	return &types.UserResponse{ID: user.ID, Email: user.Email, Username: user.Username}, nil
}

// UpdateUsername changes the authenticated user's handle. Taking back your
// own current username is a conflict, same as taking someone else's.
func (c *UsersController) UpdateUsername(ctx context.Context, userID string, req types.UpdateUserRequest) (*types.UserResponse, error) {
	if err := apierrors.Validation(schemas.ValidateUpdateUser(req)); err != nil {
		return nil, err
	}

	existing, err := c.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apierrors.NotFound("Usuario no encontrado")
	}

	newUsername := "@" + req.Username

	byUsername, err := c.users.GetUserByUsername(ctx, newUsername)
	if err != nil {
		return nil, err
	}
	if byUsername != nil && byUsername.ID == userID {
		return nil, &apierrors.ConflictError{
			Errors: []apierrors.FieldError{{Field: "username", Message: "Ya tienes ese nombre de usuario"}},
		}
	}
	if byUsername != nil {
		return nil, &apierrors.ConflictError{
			Errors: []apierrors.FieldError{{Field: "username", Message: "Ya existe un usuario registrado con ese nombre de usuario"}},
		}
	}

	updated, err := c.users.UpdateUsername(ctx, userID, newUsername)
	if err != nil {
		return nil, err
	}
	return &types.UserResponse{ID: updated.ID, Email: updated.Email, Username: updated.Username}, nil
}
