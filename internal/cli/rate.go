package cli

import (
	"context"
	"strings"
)

type RateCmd struct {
	Stars int `arg:"" help:"Rating from 1 to 5."`
}

func (c *RateCmd) Run(ctx *Context) error {
	bg := context.Background()
	userID, err := ctx.UserID(bg)
	if err != nil {
		return err
	}
	if _, err := ctx.API.CreateRating(bg, userID, c.Stars); err != nil {
		return err
	}
	ctx.Printf("✓ Gracias por tu calificación: %s\n", strings.Repeat("★", c.Stars))
	return nil
}
