package client

import (
	"context"
	"net/http"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges email and password for a credential
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	reqBody := LoginRequest{
		Email:    email,
		Password: password,
	}
	if err := c.validateRequest("login", reqBody); err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	err := c.do(ctx, request{
		op:     "login failed",
		method: http.MethodPost,
		path:   "/users/login",
		body:   reqBody,
	}, &loginResp)
	if err != nil {
		return nil, err
	}

	return &loginResp, nil
}

// User is a registered account as returned by the collaborator
type User struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Blocked bool   `json:"blocked,omitempty"`
}

// Me returns the profile of the logged in user
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	err := c.do(ctx, request{
		op:            "failed to fetch user data",
		method:        http.MethodGet,
		path:          "/users/me",
		authenticated: true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the editable profile fields. An empty password
// leaves the current one unchanged.
type ProfileUpdate struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// UpdateProfile saves the logged in user's profile
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if err := c.validateRequest("profile", update); err != nil {
		return err
	}

	return c.do(ctx, request{
		op:            "failed to update profile",
		method:        http.MethodPut,
		path:          "/users/update",
		body:          update,
		authenticated: true,
	}, nil)
}

// ListUsers returns every registered user (admin only)
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, request{
		op:            "failed to fetch users",
		method:        http.MethodGet,
		path:          "/users",
		authenticated: true,
	}, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// BlockUserRequest represents the block/unblock request body
type BlockUserRequest struct {
	UserID  ID   `json:"user_id" validate:"required"`
	Blocked bool `json:"blocked"`
}

// BlockUser blocks or unblocks a user account (admin only)
func (c *Client) BlockUser(ctx context.Context, userID ID, blocked bool) error {
	reqBody := BlockUserRequest{
		UserID:  userID,
		Blocked: blocked,
	}
	if err := c.validateRequest("block request", reqBody); err != nil {
		return err
	}

	op := "failed to block user"
	if !blocked {
		op = "failed to unblock user"
	}

	return c.do(ctx, request{
		op:            op,
		method:        http.MethodPut,
		path:          "/users/block",
		body:          reqBody,
		authenticated: true,
	}, nil)
}
