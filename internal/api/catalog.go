package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mana2/mana-cli/internal/models"
)

func withLimit(base string, limit int) string {
	if limit <= 0 {
		return base
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return base + "?" + q.Encode()
}

// Dishes lists active dishes. limit <= 0 leaves the server default.
func (c *Client) Dishes(ctx context.Context, limit int) ([]models.Dish, error) {
	var all []models.Dish
	if err := c.getCached(ctx, withLimit(c.cfg.URL(c.cfg.Endpoints.Dishes), limit), &all); err != nil {
		return nil, err
	}
	active := make([]models.Dish, 0, len(all))
	for _, d := range all {
		if d.IsActive {
			active = append(active, d)
		}
	}
	return active, nil
}

func (c *Client) Restaurants(ctx context.Context, limit int) ([]models.Restaurant, error) {
	var out []models.Restaurant
	if err := c.getCached(ctx, withLimit(c.cfg.URL(c.cfg.Endpoints.Restaurants), limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Routes(ctx context.Context) ([]models.TourRoute, error) {
	var out []models.TourRoute
	if err := c.getCached(ctx, c.cfg.URL(c.cfg.Endpoints.Routes), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Route fetches one tour route with its stops.
func (c *Client) Route(ctx context.Context, id int) (*models.TourRoute, error) {
	if id < 1 {
		return nil, fmt.Errorf("invalid route id %d", id)
	}
	var out models.TourRoute
	if err := c.getCached(ctx, c.cfg.URL(c.cfg.Endpoints.Routes)+"/"+strconv.Itoa(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
