package api

import (
	"context"
	"encoding/json"
	"fmt"

	"jobportal-client/internal/models"
)

const surfaceAuth = "auth"

// AuthService covers the /auth endpoints. It satisfies session.AuthAPI.
type AuthService struct {
	c *Client
}

func (c *Client) Auth() *AuthService {
	return &AuthService{c: c}
}

// Login exchanges credentials for an identity and a bearer token.
func (a *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	body := map[string]string{"email": email, "password": password}

	var env envelope
	if err := a.c.post(ctx, surfaceAuth, "/auth/login", body, &env); err != nil {
		return models.User{}, "", err
	}
	return decodeAuthResponse(env)
}

// Signup registers a new account. The response carries a token and user the
// same way login does; whether to adopt them is the session store's call.
func (a *AuthService) Signup(ctx context.Context, name, email, password string, role models.Role) (models.User, string, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     string(role),
	}

	var env envelope
	if err := a.c.post(ctx, surfaceAuth, "/auth/signup", body, &env); err != nil {
		return models.User{}, "", err
	}
	return decodeAuthResponse(env)
}

// Me resolves the identity behind the current credential.
func (a *AuthService) Me(ctx context.Context) (models.User, error) {
	var env envelope
	if err := a.c.get(ctx, surfaceAuth, "/auth/me", &env); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return models.User{}, fmt.Errorf("decoding identity: %w", err)
	}
	return user, nil
}

// ForgotPassword requests a reset mail for the given address.
func (a *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return a.c.post(ctx, surfaceAuth, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword completes a reset flow with the mailed token.
func (a *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "password": newPassword}
	return a.c.post(ctx, surfaceAuth, "/auth/reset-password", body, nil)
}

func decodeAuthResponse(env envelope) (models.User, string, error) {
	if env.Token == "" {
		return models.User{}, "", fmt.Errorf("auth response carried no token")
	}

	var user models.User
	if err := json.Unmarshal(env.User, &user); err != nil {
		return models.User{}, "", fmt.Errorf("decoding user: %w", err)
	}
	return user, env.Token, nil
}
