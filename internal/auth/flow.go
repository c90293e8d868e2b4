// Package auth implements the login state machine: credentials gated
// by a locally generated captcha, then a server-issued OTP, then a
// persisted session.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sh-bo/dms-cli/internal/api"
	"github.com/sh-bo/dms-cli/internal/session"
)

// State is the login flow's position.
type State int

const (
	// StateCredentials is the initial state: username, password and
	// captcha entry.
	StateCredentials State = iota
	// StateOtpRequested means the server accepted the credentials and
	// dispatched an OTP.
	StateOtpRequested
	// StateAuthenticated means the OTP was accepted and the session
	// has been persisted.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateCredentials:
		return "credentials"
	case StateOtpRequested:
		return "otp-requested"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrCaptchaMismatch is returned when the typed captcha does not match.
// No network call is made and a fresh captcha is generated.
var ErrCaptchaMismatch = errors.New("captcha does not match")

// ErrWrongState is returned when a step is invoked out of order.
var ErrWrongState = errors.New("login step out of order")

// Authenticator is the slice of the API client the flow needs.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (api.LoginResult, error)
	VerifyOTP(ctx context.Context, username, otp string) (api.SessionGrant, error)
}

// SessionWriter persists the grant; *session.Store implements it.
type SessionWriter interface {
	Save(ctx context.Context, sess session.Session) error
}

// Flow drives CredentialsEntry -> OtpRequested -> Authenticated.
// Any server rejection leaves the state unchanged.
type Flow struct {
	client   Authenticator
	store    SessionWriter
	state    State
	captcha  string
	username string
}

// NewFlow builds a flow in StateCredentials with a fresh captcha.
func NewFlow(client Authenticator, store SessionWriter) *Flow {
	return &Flow{
		client:  client,
		store:   store,
		state:   StateCredentials,
		captcha: NewCaptcha(),
	}
}

// State returns the current position in the flow.
func (f *Flow) State() State { return f.state }

// Captcha returns the string the user must retype.
func (f *Flow) Captcha() string { return f.captcha }

// SubmitCredentials checks the captcha locally, then submits the
// credentials. A captcha mismatch regenerates the captcha and sends
// nothing. Server rejection keeps the flow in StateCredentials.
func (f *Flow) SubmitCredentials(ctx context.Context, username, password, captchaInput string) error {
	if f.state != StateCredentials {
		return ErrWrongState
	}
	if captchaInput != f.captcha {
		f.captcha = NewCaptcha()
		return ErrCaptchaMismatch
	}
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	if _, err := f.client.Login(ctx, api.Credentials{Username: username, Password: password}); err != nil {
		return err
	}
	f.username = username
	f.state = StateOtpRequested
	return nil
}

// SubmitOTP completes authentication and persists the session. On
// rejection the flow stays in StateOtpRequested so the user can retry.
func (f *Flow) SubmitOTP(ctx context.Context, otp string) (session.Session, error) {
	if f.state != StateOtpRequested {
		return session.Session{}, ErrWrongState
	}
	if otp == "" {
		return session.Session{}, errors.New("otp is required")
	}

	grant, err := f.client.VerifyOTP(ctx, f.username, otp)
	if err != nil {
		return session.Session{}, err
	}

	sess := session.Session{
		Token:       grant.Token,
		UserID:      grant.UserID,
		DisplayName: grant.DisplayName,
		Role:        grant.Role,
		// A fresh session starts with both dashboard panels open;
		// collapsing is a remembered preference, not the default.
		DocsPanelExpanded:  true,
		AdminPanelExpanded: true,
	}
	if err := f.store.Save(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}
	f.state = StateAuthenticated
	return sess, nil
}

// LandingTarget returns the screen a freshly authenticated user is
// sent to, based on role.
func LandingTarget(role string) string {
	if role == "ADMIN" {
		return "dashboard"
	}
	return "docs"
}
