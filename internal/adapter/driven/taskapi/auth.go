package taskapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ericfisherdev/taskdeck/internal/domain/model"
)

// authJSON mirrors the login endpoint's response body.
type authJSON struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// userJSON mirrors the registration endpoint's response body.
type userJSON struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Login exchanges credentials for a bearer token via the OAuth2 password
// flow (form-encoded username and password). The username field accepts an
// email address; the server resolves either.
func (c *Client) Login(ctx context.Context, input model.LoginInput) (*model.AuthPayload, error) {
	form := url.Values{}
	form.Set("username", input.Username)
	form.Set("password", input.Password)

	var body authJSON
	if err := c.doForm(ctx, "/auth/login", form, &body); err != nil {
		return nil, err
	}

	return &model.AuthPayload{
		AccessToken: body.AccessToken,
		TokenType:   body.TokenType,
	}, nil
}

// Register creates a new account. A successful registration does not
// authenticate; the session service chains a Login afterwards.
func (c *Client) Register(ctx context.Context, input model.RegisterInput) (*model.User, error) {
	req := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}

	var body userJSON
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &body); err != nil {
		return nil, err
	}

	return mapUser(body)
}

// mapUser converts a wire user to a domain model User.
func mapUser(u userJSON) (*model.User, error) {
	createdAt, err := parseAPITime(u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapping user %q: %w", u.ID, err)
	}

	return &model.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: createdAt,
	}, nil
}
