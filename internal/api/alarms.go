package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mana2/mana-cli/internal/models"
)

// Alarms lists the current user's medication alarms in server order.
func (c *Client) Alarms(ctx context.Context) ([]models.Alarm, error) {
	var out models.AlarmList
	if err := c.get(ctx, c.cfg.URL(c.cfg.Endpoints.Alarms), &out, true); err != nil {
		return nil, err
	}
	return out.Alarms, nil
}

func (c *Client) CreateAlarm(ctx context.Context, a models.NewAlarm) (*models.Alarm, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	var out models.Alarm
	if err := c.post(ctx, c.cfg.URL(c.cfg.Endpoints.Alarms), a, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAlarm removes an alarm. Only 204 No Content counts as success.
func (c *Client) DeleteAlarm(ctx context.Context, id int) error {
	status, err := c.do(ctx, http.MethodDelete, c.cfg.URL(c.cfg.Endpoints.Alarms)+"/"+strconv.Itoa(id), nil, nil, true)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &StatusError{Status: status}
	}
	return nil
}

// CreateRating submits a 1 to 5 star rating for userID.
func (c *Client) CreateRating(ctx context.Context, userID, stars int) (*models.Rating, error) {
	r := models.Rating{UserID: userID, Rating: stars}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	var out models.Rating
	if err := c.post(ctx, c.cfg.URL(c.cfg.Endpoints.CreateRating), r, &out, true); err != nil {
		return nil, err
	}
	if out.Rating == 0 {
		out = r
	}
	return &out, nil
}
