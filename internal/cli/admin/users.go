package admin

import (
	"context"
	"strconv"
	"strings"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/constants"
)

// UsersListCmd lists registered users with their latest rating.
type UsersListCmd struct {
	Page    int `help:"Page number." default:"1"`
	PerPage int `help:"Users per page." default:"${users_per_page}" name:"per-page"`
}

func (c *UsersListCmd) Run(ctx *cli.Context) error {
	if c.Page < 1 {
		c.Page = 1
	}
	if c.PerPage < 1 {
		c.PerPage = constants.DefaultUsersPerPage
	}

	users, page, err := ctx.API.ListUsersWithRatings(context.Background(), c.Page, c.PerPage)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		ctx.Println("No hay usuarios registrados.")
		return nil
	}

	ctx.Printf("%-5s %-28s %-24s %-5s %-24s %s\n", "ID", "Correo", "Nombre", "Edad", "Condiciones", "Calificación")
	ctx.Println(strings.Repeat("-", 100))
	for _, u := range users {
		age := "-"
		if u.Age != nil {
			age = strconv.Itoa(*u.Age)
		}
		conds := strings.Join(u.Conditions(), ", ")
		if conds == "" {
			conds = "-"
		}
		rating := "-"
		if u.LastRating != nil {
			rating = strings.Repeat("★", *u.LastRating)
		}
		ctx.Printf("%-5d %-28s %-24s %-5s %-24s %s\n",
			u.ID, cli.Truncate(u.Email, 28), cli.Truncate(u.FullName, 24), age, cli.Truncate(conds, 24), rating)
	}
	ctx.Printf("\nPágina %d de %d (%d usuarios)\n", page.Page, page.TotalPages, page.Total)
	return nil
}
