package api

import "context"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// VerifyResponse is the identity-verification payload. The backend exposes a
// dedicated GET /auth/verify endpoint returning the flat user_id/role shape.
type VerifyResponse struct {
	Status string `json:"status"`
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// Login authenticates against the portal. On success the returned token is
// automatically set for subsequent requests; persisting it is the caller's
// job.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}

	var resp LoginResponse
	if err := c.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess {
		return nil, &Error{Kind: KindMalformed, Message: "login response missing success status"}
	}

	c.SetToken(resp.Token)
	return &resp, nil
}

// Verify checks the current bearer token against the backend and returns the
// verified identity.
func (c *Client) Verify(ctx context.Context) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.Get(ctx, "/auth/verify", &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess {
		return nil, &Error{Kind: KindMalformed, Message: "verify response missing success status"}
	}
	return &resp, nil
}
