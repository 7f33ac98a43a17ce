package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/mana2/mana-cli/internal/models"
)

var ErrNothingToUpdate = errors.New("no fields to update")

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, c.cfg.URL(c.cfg.Endpoints.Profile), &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe replaces the basic profile fields that are set in upd.
func (c *Client) UpdateMe(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	if upd.Empty() {
		return nil, ErrNothingToUpdate
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	var user models.User
	if _, err := c.do(ctx, http.MethodPut, c.cfg.URL(c.cfg.Endpoints.Profile), upd, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Health(ctx context.Context) (*models.HealthInfo, error) {
	var info models.HealthInfo
	if err := c.get(ctx, c.cfg.URL(c.cfg.Endpoints.Health), &info, true); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateHealth replaces the whole health record.
func (c *Client) UpdateHealth(ctx context.Context, info models.HealthInfo) (*models.HealthInfo, error) {
	var out models.HealthInfo
	if _, err := c.do(ctx, http.MethodPut, c.cfg.URL(c.cfg.Endpoints.Health), info, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchHealth sends only the fields set in upd.
func (c *Client) PatchHealth(ctx context.Context, upd models.HealthUpdate) (*models.HealthInfo, error) {
	if upd.Empty() {
		return nil, ErrNothingToUpdate
	}
	var out models.HealthInfo
	if _, err := c.do(ctx, http.MethodPatch, c.cfg.URL(c.cfg.Endpoints.Health), upd, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MedicalProfile(ctx context.Context) (*models.MedicalProfile, error) {
	var p models.MedicalProfile
	if err := c.get(ctx, c.cfg.URL(c.cfg.Endpoints.MedicalProfile), &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateMedicalProfile validates and submits the medical profile.
func (c *Client) CreateMedicalProfile(ctx context.Context, p models.MedicalProfile) (*models.MedicalProfile, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var out models.MedicalProfile
	if err := c.post(ctx, c.cfg.URL(c.cfg.Endpoints.MedicalProfile), p, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}
