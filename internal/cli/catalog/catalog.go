package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/models"
)

type DishesCmd struct {
	Limit    int    `help:"Maximum number of dishes to fetch." default:"0"`
	Category string `help:"Only show dishes of this category."`
	Details  bool   `help:"Show description, benefits and ingredients." short:"d"`
}

func (c *DishesCmd) Run(ctx *cli.Context) error {
	dishes, err := ctx.API.Dishes(context.Background(), c.Limit)
	if err != nil {
		return err
	}
	dishes = filterDishes(dishes, c.Category)
	if len(dishes) == 0 {
		ctx.Println("No hay platos disponibles.")
		return nil
	}

	ctx.Printf("%-4s %-30s %-22s %-12s %-6s %s\n", "ID", "Plato", "Restaurante", "Categoría", "★", "Precio")
	ctx.Println(strings.Repeat("-", 90))
	for _, d := range dishes {
		ctx.Printf("%-4d %-30s %-22s %-12s %-6.1f %s\n",
			d.ID, cli.Truncate(d.Name, 30), cli.Truncate(d.Restaurant, 22),
			cli.Truncate(d.Category, 12), d.Rating, FormatCOP(d.PriceCOP))
		if c.Details {
			printDishDetails(ctx, d)
		}
	}
	return nil
}

func filterDishes(dishes []models.Dish, category string) []models.Dish {
	if category == "" {
		return dishes
	}
	var out []models.Dish
	for _, d := range dishes {
		if strings.EqualFold(d.Category, category) {
			out = append(out, d)
		}
	}
	return out
}

func printDishDetails(ctx *cli.Context, d models.Dish) {
	if d.Description != "" {
		ctx.Printf("     %s\n", d.Description)
	}
	if d.HealthBenefits != "" {
		ctx.Printf("     Beneficios: %s\n", d.HealthBenefits)
	}
	if d.MainProtein != "" {
		ctx.Printf("     Proteína: %s\n", d.MainProtein)
	}
	if len(d.Ingredients) > 0 {
		ctx.Printf("     Ingredientes: %s\n", strings.Join(d.Ingredients, ", "))
	}
	if d.PriceDelivery != nil {
		ctx.Printf("     Domicilio: %s\n", FormatCOP(*d.PriceDelivery))
	}
}

// FormatCOP renders a peso amount with dot thousands separators, e.g. "$ 25.000".
func FormatCOP(v float64) string {
	n := int64(v + 0.5)
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(digits[i])
	}
	if neg {
		return "-$ " + b.String()
	}
	return "$ " + b.String()
}

type RestaurantsCmd struct {
	Limit int `help:"Maximum number of restaurants to fetch." default:"0"`
}

func (c *RestaurantsCmd) Run(ctx *cli.Context) error {
	restaurants, err := ctx.API.Restaurants(context.Background(), c.Limit)
	if err != nil {
		return err
	}
	if len(restaurants) == 0 {
		ctx.Println("No hay restaurantes disponibles.")
		return nil
	}

	for _, r := range restaurants {
		ctx.Printf("%s  ★ %.1f\n", cli.HeaderStyle.Render(r.Name), r.Rating)
		if r.Location != "" {
			ctx.Printf("  %s\n", r.Location)
		}
		if r.Description != "" {
			ctx.Printf("  %s\n", r.Description)
		}
		if len(r.Specialties) > 0 {
			ctx.Printf("  Especialidades: %s\n", strings.Join(r.Specialties, ", "))
		}
	}
	return nil
}

type RoutesListCmd struct{}

func (c *RoutesListCmd) Run(ctx *cli.Context) error {
	routes, err := ctx.API.Routes(context.Background())
	if err != nil {
		return err
	}
	if len(routes) == 0 {
		ctx.Println("No hay rutas disponibles.")
		return nil
	}

	ctx.Printf("%-4s %-30s %s\n", "ID", "Ruta", "Paradas")
	ctx.Println(strings.Repeat("-", 45))
	for _, r := range routes {
		ctx.Printf("%-4d %-30s %d\n", r.ID, cli.Truncate(r.RouteName, 30), len(r.Stops))
	}
	return nil
}

type RouteShowCmd struct {
	ID int `arg:"" help:"Route ID."`
}

func (c *RouteShowCmd) Run(ctx *cli.Context) error {
	route, err := ctx.API.Route(context.Background(), c.ID)
	if err != nil {
		return err
	}

	ctx.Println(cli.HeaderStyle.Render(route.RouteName))
	for _, s := range route.Stops {
		ctx.Printf("  %2d. %-28s llegada %s  salida %s\n",
			s.StopNumber, cli.Truncate(s.StopName, 28), clock(s.ArrivalTime), clock(s.DepartureTime))
		if s.LocationURL != "" {
			ctx.Printf("      %s\n", s.LocationURL)
		}
	}
	return nil
}

// clock trims the seconds of an HH:MM:SS stop time.
func clock(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}
