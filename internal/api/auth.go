package api

import (
	"context"
	"fmt"
)

// Credentials are the first-step login inputs.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the server's acknowledgment that credentials were
// accepted and an OTP has been dispatched.
type LoginResult struct {
	OtpSent bool   `json:"otpSent"`
	Message string `json:"message"`
}

// SessionGrant is issued once the OTP is verified.
type SessionGrant struct {
	Token       string `json:"token"`
	UserID      int64  `json:"userId"`
	DisplayName string `json:"name"`
	Role        string `json:"role"`
}

// Login submits username and password. On acceptance the backend sends
// an OTP out of band. Anonymous endpoint: no bearer header.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var result LoginResult
	resp, err := c.http.R().SetContext(ctx).
		SetBody(creds).
		SetResult(&result).
		Post("/auth/login")
	if err != nil {
		return result, fmt.Errorf("auth: login: %w", err)
	}
	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return result, &APIError{Status: resp.StatusCode(), Resource: "auth", Message: "invalid username or password"}
	}
	if err := c.checkResponse("auth", resp); err != nil {
		return result, err
	}
	return result, nil
}

// VerifyOTP completes authentication. The grant carries everything the
// session store persists. Anonymous endpoint: no bearer header.
func (c *Client) VerifyOTP(ctx context.Context, username, otp string) (SessionGrant, error) {
	var grant SessionGrant
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"username": username, "otp": otp}).
		SetResult(&grant).
		Post("/auth/verify-otp")
	if err != nil {
		return grant, fmt.Errorf("auth: verify otp: %w", err)
	}
	if resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return grant, &APIError{Status: resp.StatusCode(), Resource: "auth", Message: "invalid or expired OTP"}
	}
	if err := c.checkResponse("auth", resp); err != nil {
		return grant, err
	}
	return grant, nil
}
