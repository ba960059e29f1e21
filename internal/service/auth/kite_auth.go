package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/krobus00/kite-order-cli/internal/config"
	"github.com/krobus00/kite-order-cli/internal/constant"
	"github.com/krobus00/kite-order-cli/internal/entity"
	"github.com/pquerna/otp/totp"
	"github.com/sirupsen/logrus"
)

// State tracks where a login attempt is in the challenge/response flow.
// Authenticated and Failed are terminal.
type State int

const (
	StateUnauthenticated State = iota
	StateChallengeIssued
	StateAuthenticated
	StateFailed
)

var (
	ErrTokenMissing = errors.New("failed to retrieve token")
	errNoJar        = errors.New("http client has no cookie jar")
)

// KiteAuthenticator performs the three-step Kite web login: credentials, TOTP
// verification, enctoken cookie extraction. One authenticator serves one login
// attempt; the submitter creates a fresh one per run.
type KiteAuthenticator struct {
	cfg    config.KiteConfig
	client *http.Client
	state  State
}

func NewKiteAuthenticator(cfg config.KiteConfig, client *http.Client) *KiteAuthenticator {
	return &KiteAuthenticator{
		cfg:    cfg,
		client: client,
		state:  StateUnauthenticated,
	}
}

func (a *KiteAuthenticator) State() State {
	return a.state
}

// Login runs the full flow and returns the session credential. A non-nil error
// is the sole failure signal; the reason is logged here and the method never
// panics past this boundary.
func (a *KiteAuthenticator) Login(ctx context.Context) (string, error) {
	requestID, userID, err := a.submitCredentials(ctx)
	if err != nil {
		a.state = StateFailed
		logrus.Errorf("error during login: %v", err)
		return "", err
	}

	a.state = StateChallengeIssued

	enctoken, err := a.verifyTwoFA(ctx, requestID, userID)
	if err != nil {
		a.state = StateFailed
		logrus.Errorf("error during two-factor authentication: %v", err)
		return "", err
	}

	a.state = StateAuthenticated

	return enctoken, nil
}

func (a *KiteAuthenticator) submitCredentials(ctx context.Context) (requestID, userID string, err error) {
	form := url.Values{}
	form.Set("user_id", a.cfg.UserID)
	form.Set("password", a.cfg.Password)
	form.Set("type", constant.LoginTypeUser)

	body, err := a.postForm(ctx, constant.KiteLoginPath, form)
	if err != nil {
		return "", "", err
	}

	var loginRes entity.LoginResponse
	if err := json.Unmarshal(body, &loginRes); err != nil {
		return "", "", fmt.Errorf("decode login response: %w", err)
	}

	if loginRes.Data.RequestID == "" {
		return "", "", fmt.Errorf("login failed: %s", messageOrUnknown(loginRes.Message))
	}

	return loginRes.Data.RequestID, loginRes.Data.UserID, nil
}

func (a *KiteAuthenticator) verifyTwoFA(ctx context.Context, requestID, userID string) (string, error) {
	// The code is derived at call time; a cached value may already be stale.
	code, err := totp.GenerateCode(a.cfg.TOTPKey, time.Now())
	if err != nil {
		return "", fmt.Errorf("generate totp code: %w", err)
	}

	form := url.Values{}
	form.Set("request_id", requestID)
	form.Set("twofa_value", code)
	form.Set("user_id", userID)
	form.Set("twofa_type", constant.TwoFATypeTOTP)

	body, err := a.postForm(ctx, constant.KiteTwoFAPath, form)
	if err != nil {
		return "", err
	}

	var twoFARes entity.TwoFAResponse
	if err := json.Unmarshal(body, &twoFARes); err != nil {
		return "", fmt.Errorf("decode twofa response: %w", err)
	}

	if twoFARes.Status != "success" {
		return "", fmt.Errorf("2FA failed: %s", messageOrUnknown(twoFARes.Message))
	}

	return a.extractEnctoken()
}

// extractEnctoken inspects the client's jar for the session cookie set by the
// 2FA response. A successful 2FA without the cookie is still a failed login.
func (a *KiteAuthenticator) extractEnctoken() (string, error) {
	if a.client.Jar == nil {
		return "", errNoJar
	}

	baseURL, err := url.Parse(a.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	for _, cookie := range a.client.Jar.Cookies(baseURL) {
		if cookie.Name == constant.EnctokenCookieName && cookie.Value != "" {
			return cookie.Value, nil
		}
	}

	return "", ErrTokenMissing
}

func (a *KiteAuthenticator) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	return io.ReadAll(res.Body)
}

func messageOrUnknown(message string) string {
	if message == "" {
		return "Unknown error"
	}

	return message
}
