package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sh-bo/dms-cli/internal/auth"
	"github.com/sh-bo/dms-cli/internal/session"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldCaptcha
)

type credentialsResultMsg struct {
	requestID uint64
	err       error
}

type otpResultMsg struct {
	requestID uint64
	sess      session.Session
	err       error
}

// LoginModel drives the interactive login: credentials plus captcha,
// then the OTP, then the persisted session.
type LoginModel struct {
	flow *auth.Flow

	inputs  []textinput.Model
	otp     textinput.Model
	focused int
	busy    bool

	requestID uint64
	errID     uint64
	errMsg    string

	sess      session.Session
	done      bool
	cancelled bool
}

// NewLoginModel builds the login form over a fresh flow.
func NewLoginModel(flow *auth.Flow) LoginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "username > "
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "password > "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	captcha := textinput.New()
	captcha.Placeholder = "retype the code above"
	captcha.Prompt = "captcha  > "
	captcha.CharLimit = 12

	otp := textinput.New()
	otp.Placeholder = "one-time code"
	otp.Prompt = "otp > "
	otp.CharLimit = 8

	return LoginModel{
		flow:   flow,
		inputs: []textinput.Model{username, password, captcha},
		otp:    otp,
	}
}

// Session returns the persisted session after a successful login.
func (m LoginModel) Session() (session.Session, bool) {
	return m.sess, m.done
}

// Cancelled reports whether the user aborted the login.
func (m LoginModel) Cancelled() bool { return m.cancelled }

// Init implements tea.Model.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case credentialsResultMsg:
		if msg.requestID != m.requestID {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			// Captcha mismatch wipes the stale captcha input; the flow
			// already regenerated the code.
			if errors.Is(msg.err, auth.ErrCaptchaMismatch) {
				m.inputs[fieldCaptcha].SetValue("")
			}
			return m.showError(msg.err)
		}
		m.otp.Focus()
		return m, textinput.Blink

	case otpResultMsg:
		if msg.requestID != m.requestID {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.otp.SetValue("")
			return m.showError(msg.err)
		}
		m.sess = msg.sess
		m.done = true
		return m, tea.Quit

	case clearErrMsg:
		if msg.id == m.errID {
			m.errMsg = ""
		}
		return m, nil
	}

	return m, nil
}

func (m LoginModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		if m.flow.State() == auth.StateCredentials {
			m.focusField((m.focused + 1) % len(m.inputs))
		}
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		if m.flow.State() == auth.StateCredentials {
			m.focusField((m.focused + len(m.inputs) - 1) % len(m.inputs))
		}
		return m, textinput.Blink

	case tea.KeyEnter:
		return m.submit()
	}

	if m.busy {
		return m, nil
	}

	var cmd tea.Cmd
	if m.flow.State() == auth.StateOtpRequested {
		m.otp, cmd = m.otp.Update(msg)
	} else {
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	}
	return m, cmd
}

// submit advances the flow. The submit action is disabled while a
// request is outstanding so a second Enter cannot double-send.
func (m LoginModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch m.flow.State() {
	case auth.StateCredentials:
		if m.focused < len(m.inputs)-1 {
			m.focusField(m.focused + 1)
			return m, textinput.Blink
		}
		username := m.inputs[fieldUsername].Value()
		password := m.inputs[fieldPassword].Value()
		captcha := m.inputs[fieldCaptcha].Value()

		m.busy = true
		m.requestID++
		reqID := m.requestID
		flow := m.flow
		return m, func() tea.Msg {
			err := flow.SubmitCredentials(context.Background(), username, password, captcha)
			return credentialsResultMsg{requestID: reqID, err: err}
		}

	case auth.StateOtpRequested:
		otp := m.otp.Value()
		m.busy = true
		m.requestID++
		reqID := m.requestID
		flow := m.flow
		return m, func() tea.Msg {
			sess, err := flow.SubmitOTP(context.Background(), otp)
			return otpResultMsg{requestID: reqID, sess: sess, err: err}
		}
	}
	return m, nil
}

func (m *LoginModel) focusField(n int) {
	m.inputs[m.focused].Blur()
	m.focused = n
	m.inputs[m.focused].Focus()
}

func (m LoginModel) showError(err error) (tea.Model, tea.Cmd) {
	m.errMsg = err.Error()
	m.errID++
	id := m.errID
	return m, tea.Tick(errorBannerTTL, func(time.Time) tea.Msg {
		return clearErrMsg{id: id}
	})
}

// View implements tea.Model.
func (m LoginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dms login"))
	b.WriteString("\n\n")

	if m.flow.State() == auth.StateOtpRequested {
		b.WriteString(dimStyle.Render("a one-time code has been sent to you"))
		b.WriteString("\n\n")
		b.WriteString(m.otp.View())
	} else {
		b.WriteString(m.inputs[fieldUsername].View())
		b.WriteString("\n")
		b.WriteString(m.inputs[fieldPassword].View())
		b.WriteString("\n\n")
		b.WriteString(captchaStyle.Render(m.flow.Captcha()))
		b.WriteString("\n")
		b.WriteString(m.inputs[fieldCaptcha].View())
	}
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(dimStyle.Render("submitting..."))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("error: " + m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter submit · tab next field · esc cancel"))
	return b.String()
}
