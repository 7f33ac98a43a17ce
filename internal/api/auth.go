package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mana2/mana-cli/internal/events"
	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/models"
	"github.com/mana2/mana-cli/internal/session"
)

// Login exchanges email and password for a token, stores it and publishes
// a login event. The user id is resolved from the profile when possible.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Token, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	token, err := c.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	creds := session.Credentials{AccessToken: token.AccessToken, TokenType: token.TokenType}
	if err := c.session.Save(creds); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}

	if me, err := c.Me(ctx); err == nil {
		creds.UserID = me.ID
		if err := c.session.Save(creds); err != nil {
			logger.Warn("Failed to store user id", "error", err)
		}
	} else {
		logger.Debug("Could not resolve user id after login", "error", err)
	}

	c.InvalidateCache()
	c.bus.PublishLoggedIn(events.UserLoggedIn{UserID: creds.UserID, Email: email})
	return token, nil
}

func (c *Client) authenticate(ctx context.Context, req models.LoginRequest) (*models.Token, error) {
	var token models.Token
	if err := c.post(ctx, c.cfg.URL(c.cfg.Endpoints.Login), req, &token, false); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}
	return &token, nil
}

// Register creates the account and logs in with the new credentials.
// When the account is created but the automatic login fails, the user is
// returned together with the login error.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var user models.User
	if err := c.post(ctx, c.cfg.URL(c.cfg.Endpoints.Register), req, &user, false); err != nil {
		return nil, err
	}

	token, err := c.authenticate(ctx, models.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return &user, fmt.Errorf("account created but automatic login failed: %w", err)
	}

	creds := session.Credentials{AccessToken: token.AccessToken, TokenType: token.TokenType, UserID: user.ID}
	if err := c.session.Save(creds); err != nil {
		return &user, fmt.Errorf("failed to store credentials: %w", err)
	}

	c.bus.PublishLoggedIn(events.UserLoggedIn{UserID: user.ID, Email: user.Email})
	return &user, nil
}

// Logout notifies the backend, then clears the local credential and
// publishes a logout event. The server call is best effort.
func (c *Client) Logout(ctx context.Context) error {
	creds, err := c.session.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	status, _, err := c.send(ctx, http.MethodPost, c.cfg.URL(c.cfg.Endpoints.Logout), nil, &creds)
	if err != nil || status >= 400 {
		logger.Debug("Server logout failed", "status", status, "error", err)
	}

	if err := c.session.Clear(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	c.InvalidateCache()
	c.bus.PublishLoggedOut(events.UserLoggedOut{UserID: creds.UserID, Reason: events.LogoutRequested})
	return nil
}
