package rest

import (
	"context"
	"net/http"

	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
)

func (c *client) GetUser(ctx context.Context) (apiauth.User, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet, path: []string{"auth", "user"}, authorized: true,
	})
	if err != nil {
		return apiauth.User{}, err
	}
	defer resp.Body.Close()

	return unmarshalUser(resp, MessageFor{
		Status2xx: "not authorized",
		Status4xx: "not authorized",
		Status5xx: serverError(resp),
	})
}

func (c *client) UpdateUser(ctx context.Context, patch apiauth.UserPatch) (apiauth.User, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPatch, path: []string{"auth", "user"}, body: patch, authorized: true,
	})
	if err != nil {
		return apiauth.User{}, err
	}
	defer resp.Body.Close()

	return unmarshalUser(resp, MessageFor{
		Status2xx: "failed to update profile",
		Status4xx: "failed to update profile",
		Status5xx: serverError(resp),
	})
}

func unmarshalUser(resp *http.Response, messageFor MessageFor) (apiauth.User, error) {
	body := apiauth.UserResponse{}
	if err := unmarshalJsonResponse(resp, &body, messageFor); err != nil {
		return apiauth.User{}, err
	}
	if body.User == nil {
		return apiauth.User{}, rejection(messageFor[Status2xx], ErrRejected, "user is missing in response")
	}
	return *body.User, nil
}

func (c *client) Login(ctx context.Context, email string, password string) (apiauth.User, apiauth.Tokens, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPost, path: []string{"auth", "login"},
		body: apiauth.LoginRequest{Email: email, Password: password},
	})
	if err != nil {
		return apiauth.User{}, apiauth.Tokens{}, err
	}
	defer resp.Body.Close()

	return unmarshalSession(resp, MessageFor{
		Status2xx: "login failed",
		Status4xx: "login failed",
		Status5xx: serverError(resp),
	})
}

func (c *client) Register(ctx context.Context, name string, email string, password string) (apiauth.User, apiauth.Tokens, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPost, path: []string{"auth", "register"},
		body: apiauth.RegisterRequest{Name: name, Email: email, Password: password},
	})
	if err != nil {
		return apiauth.User{}, apiauth.Tokens{}, err
	}
	defer resp.Body.Close()

	return unmarshalSession(resp, MessageFor{
		Status2xx: "registration failed",
		Status4xx: "registration failed",
		Status5xx: serverError(resp),
	})
}

func unmarshalSession(resp *http.Response, messageFor MessageFor) (apiauth.User, apiauth.Tokens, error) {
	body := apiauth.SessionResponse{}
	if err := unmarshalJsonResponse(resp, &body, messageFor); err != nil {
		return apiauth.User{}, apiauth.Tokens{}, err
	}
	if body.User == nil || !body.Tokens.Complete() {
		return apiauth.User{}, apiauth.Tokens{}, rejection(
			messageFor[Status2xx], ErrRejected, "user or tokens are missing in response",
		)
	}
	return *body.User, body.Tokens, nil
}

func (c *client) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.do(ctx, request{
		method: http.MethodPost, path: []string{"auth", "logout"},
		body: apiauth.TokenRequest{Token: refreshToken},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body := apiauth.MessageResponse{}
	return unmarshalJsonResponse(resp, &body, MessageFor{
		Status2xx: "logout failed",
		Status4xx: "logout failed",
		Status5xx: serverError(resp),
	})
}

func (c *client) RefreshToken(ctx context.Context, refreshToken string) (apiauth.Tokens, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPost, path: []string{"auth", "token"},
		body: apiauth.TokenRequest{Token: refreshToken},
	})
	if err != nil {
		return apiauth.Tokens{}, err
	}
	defer resp.Body.Close()

	body := apiauth.TokenResponse{}
	if err := unmarshalJsonResponse(resp, &body, MessageFor{
		Status2xx: "session expired",
		Status4xx: "session expired",
		Status5xx: serverError(resp),
	}); err != nil {
		return apiauth.Tokens{}, err
	}
	if !body.Tokens.Complete() {
		return apiauth.Tokens{}, rejection("session expired", ErrUnauthorized, "tokens are missing in response")
	}
	return body.Tokens, nil
}
