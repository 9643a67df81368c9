package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"agroalert.dev/dashboard-service/pkg/common"
)

// HostedProvider delegates officer sessions to a GoTrue-compatible auth API,
// the auth half of the hosted farm data backend.
type HostedProvider struct {
	*Broadcaster

	client *resty.Client
	logger *zap.Logger
}

type hostedUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type hostedTokenResponse struct {
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
	User        hostedUser `json:"user"`
}

type hostedError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func NewHostedProvider(baseURL, anonKey string, timeout time.Duration) *HostedProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("apikey", anonKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HostedProvider{
		Broadcaster: NewBroadcaster(),
		client:      client,
		logger:      common.GetLoggerWith(common.LoggerNameAuth, zap.String(common.LoggerFieldCategory, common.LoggerCategorySession)),
	}
}

func metadataString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func (u hostedUser) session(token string, expires time.Time) *Session {
	return &Session{
		Token:     token,
		OfficerID: u.ID,
		Email:     u.Email,
		Name:      metadataString(u.UserMetadata, "name"),
		Region:    metadataString(u.UserMetadata, "region"),
		ExpiresAt: expires,
	}
}

func (p *HostedProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var result hostedTokenResponse
	var failure hostedError
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		SetError(&failure).
		Post("/auth/v1/token")
	if err != nil {
		return nil, fmt.Errorf("hosted sign-in: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusBadRequest || resp.StatusCode() == http.StatusUnauthorized:
		p.logger.Info("Hosted sign-in rejected", zap.String("error", failure.Error), zap.String("description", failure.ErrorDescription))
		return nil, ErrInvalidCredentials
	case resp.IsError():
		return nil, fmt.Errorf("hosted sign-in: status %d", resp.StatusCode())
	}

	session := result.User.session(result.AccessToken, time.Now().Add(time.Duration(result.ExpiresIn)*time.Second))
	p.logger.Info("Officer signed in", zap.String("officer_id", session.OfficerID))
	p.started(session)
	return session, nil
}

func (p *HostedProvider) GetSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	var user hostedUser
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&user).
		Get("/auth/v1/user")
	if err != nil {
		return nil, fmt.Errorf("hosted session lookup: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return nil, ErrNoSession
	}
	if resp.IsError() {
		return nil, fmt.Errorf("hosted session lookup: status %d", resp.StatusCode())
	}
	// The user endpoint does not report expiry; the token itself is the authority.
	return user.session(token, time.Time{}), nil
}

func (p *HostedProvider) SignOut(ctx context.Context, token string) error {
	session, err := p.GetSession(ctx, token)
	if err != nil {
		return err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Post("/auth/v1/logout")
	if err != nil {
		return fmt.Errorf("hosted sign-out: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("hosted sign-out: status %d", resp.StatusCode())
	}

	p.logger.Info("Officer signed out", zap.String("officer_id", session.OfficerID))
	p.ended(token, session.OfficerID)
	return nil
}
