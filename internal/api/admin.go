package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/models"
)

// ListUsers fetches one page of the admin user listing.
func (c *Client) ListUsers(ctx context.Context, page, perPage int) (*models.UserPage, error) {
	if page < 1 || perPage < 1 {
		return nil, fmt.Errorf("page and per_page must be >= 1")
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var out models.UserPage
	if err := c.get(ctx, c.cfg.URL(c.cfg.Endpoints.Users)+"?"+q.Encode(), &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserRatings lists the ratings a user has submitted, oldest first.
func (c *Client) UserRatings(ctx context.Context, userID int) (*models.RatingList, error) {
	return c.userRatings(ctx, userID, true)
}

func (c *Client) userRatings(ctx context.Context, userID int, expireOnReject bool) (*models.RatingList, error) {
	path := strings.ReplaceAll(c.cfg.Endpoints.UserRatings, "{id}", strconv.Itoa(userID))
	var out models.RatingList
	if _, err := c.call(ctx, http.MethodGet, c.cfg.URL(path), nil, &out, true, expireOnReject); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsersWithRatings fetches a page of users and each user's latest
// rating in parallel. A failed rating fetch, including a 401 or 403, leaves
// that row's rating nil and keeps the session.
func (c *Client) ListUsersWithRatings(ctx context.Context, page, perPage int) ([]models.UserWithRating, *models.UserPage, error) {
	users, err := c.ListUsers(ctx, page, perPage)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]models.UserWithRating, len(users.Users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fanout)

	for i, u := range users.Users {
		rows[i].User = u
		g.Go(func() error {
			ratings, err := c.userRatings(gctx, u.ID, false)
			if err != nil {
				logger.Debug("Failed to fetch ratings", "user_id", u.ID, "error", err)
				return nil
			}
			rows[i].LastRating = ratings.Last()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return rows, users, nil
}
