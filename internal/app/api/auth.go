package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

// Login exchanges email and password for a bearer credential.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := jsonBody(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	var resp models.AuthResponse
	err = c.do(ctx, request{
		op:          "login",
		method:      http.MethodPost,
		path:        "/api/auth/login",
		body:        body,
		contentType: "application/json",
		anonymous:   true,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.JWT == "" {
		return "", fmt.Errorf("login: backend returned an empty credential")
	}
	return resp.JWT, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	body, err := jsonBody(req)
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		op:          "register",
		method:      http.MethodPost,
		path:        "/api/auth/register",
		body:        body,
		contentType: "application/json",
		anonymous:   true,
	}, nil)
}
