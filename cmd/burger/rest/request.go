package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type request struct {
	method string
	path   []string

	// json body. nil means no body.
	body any

	// authorized requests carry the access token and are retried once after refreshing it.
	authorized bool
}

func (c *client) do(ctx context.Context, r request) (*http.Response, error) {
	var payload []byte
	if r.body != nil {
		p, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		payload = p
	}

	if !r.authorized {
		return c.send(ctx, r, payload, "")
	}

	if c.auth == nil {
		return nil, rejection("login required", ErrUnauthorized, r.method+" "+c.apipath(r.path...))
	}

	refreshed := false
	token := c.auth.AccessToken()
	if token == "" {
		t, err := c.refresh(ctx)
		if err != nil {
			return nil, err
		}
		token = t
		refreshed = true
	}

	resp, err := c.send(ctx, r, payload, token)
	if err != nil || refreshed || !isUnauthorized(resp) {
		return resp, err
	}
	drain(resp)

	c.log.WithField("path", c.apipath(r.path...)).Debug("access token is refused. refreshing")
	token, err = c.refresh(ctx)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, r, payload, token)
}

func (c *client) refresh(ctx context.Context) (string, error) {
	token, err := c.auth.Refresh(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", rejection("login required", ErrUnauthorized, "refreshing access token")
	}
	return token, nil
}

func (c *client) send(ctx context.Context, r request, payload []byte, token string) (*http.Response, error) {
	url := c.apipath(r.path...)

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if token != "" {
		// credentials are opaque. sent as they are.
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		c.log.WithField("method", r.method).WithField("url", url).WithError(err).Debug("request failed")
		return nil, transportError(r.method, url, err)
	}
	c.log.WithField("method", r.method).WithField("url", url).WithField("status", resp.StatusCode).Debug("response")
	return resp, nil
}

func serverError(resp *http.Response) string {
	return fmt.Sprintf("server error (status code = %d)", resp.StatusCode)
}
