package api

import (
	"context"
	"net/http"
)

// Magic links let an interpreter act on one specific job from an email link
// without a login session. The token in the URL scopes what it can do; none
// of these calls send the Authorization header.

// MagicLinkJob fetches the job a magic-link token points at.
func (c *Client) MagicLinkJob(ctx context.Context, token string) (*Job, error) {
	var job Job
	if err := c.do(ctx, request{method: http.MethodGet, path: "/magic-link/jobs/" + token, noAuth: true}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// MagicLinkConfirm confirms availability for the linked job.
func (c *Client) MagicLinkConfirm(ctx context.Context, token string) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/magic-link/jobs/" + token + "/confirm", noAuth: true}, nil)
}

// MagicLinkStart starts the job timer for the linked job.
func (c *Client) MagicLinkStart(ctx context.Context, token string) (*Job, error) {
	var job Job
	if err := c.do(ctx, request{method: http.MethodPost, path: "/magic-link/jobs/" + token + "/start", noAuth: true}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// MagicLinkEnd ends the job timer for the linked job.
func (c *Client) MagicLinkEnd(ctx context.Context, token string) (*Job, error) {
	var job Job
	if err := c.do(ctx, request{method: http.MethodPost, path: "/magic-link/jobs/" + token + "/end", noAuth: true}, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
