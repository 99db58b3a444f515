package api

import (
	"context"
	"net/http"
)

// LoginResult is the token and profile issued on a successful login.
type LoginResult struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// Login exchanges credentials for a session token and profile. It does not
// persist anything; the caller stores the result in the session store.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var result LoginResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: body, noAuth: true}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the server-side session. Failures are reported but the
// caller clears local state regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout"}, nil)
}

// Me fetches the current interpreter profile, used to refresh the cached
// copy after login or on demand.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, request{method: http.MethodGet, path: "/interpreters/me"}, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
