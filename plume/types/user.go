// plume/types/user.go
package types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
}

// UserResponse is the safe projection of a user record: the password hash
// never leaves the system.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type LoginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type LoginResponse struct {
	User LoginUser `json:"user"`
}

type RegisterResponse struct {
	User UserResponse `json:"user"`
}
