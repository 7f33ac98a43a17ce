package catalog

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mana2/mana-cli/internal/cli/clitest"
	"github.com/mana2/mana-cli/internal/models"
)

func TestFormatCOP(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$ 0"},
		{950, "$ 950"},
		{25000, "$ 25.000"},
		{1234567.6, "$ 1.234.568"},
		{-3500, "-$ 3.500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCOP(tt.in), "FormatCOP(%v)", tt.in)
	}
}

func dishServer() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/dishes", func(w http.ResponseWriter, r *http.Request) {
		clitest.JSON(w, http.StatusOK, []models.Dish{
			{ID: 1, Name: "Mote de queso", Restaurant: "La Cevichería", Category: "Sopas", Rating: 4.5, PriceCOP: 28000, IsActive: true,
				Ingredients: []string{"ñame", "queso costeño"}},
			{ID: 2, Name: "Arepa de huevo", Restaurant: "Donde Magola", Category: "Fritos", Rating: 4.8, PriceCOP: 6000, IsActive: true},
			{ID: 3, Name: "Plato retirado", Category: "Sopas", IsActive: false},
		})
	})
	return mux
}

func TestDishesCmd_FiltersCategory(t *testing.T) {
	env := clitest.New(t, dishServer(), nil)

	require.NoError(t, (&DishesCmd{Category: "sopas", Details: true}).Run(env.Ctx))

	out := env.Output()
	assert.Contains(t, out, "Mote de queso")
	assert.Contains(t, out, "$ 28.000")
	assert.Contains(t, out, "Ingredientes: ñame, queso costeño")
	assert.NotContains(t, out, "Arepa de huevo")
	assert.NotContains(t, out, "Plato retirado")
}

func TestDishesCmd_NoMatches(t *testing.T) {
	env := clitest.New(t, dishServer(), nil)

	require.NoError(t, (&DishesCmd{Category: "Postres"}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "No hay platos disponibles.")
}

func TestRestaurantsCmd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/restaurants", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		clitest.JSON(w, http.StatusOK, []models.Restaurant{
			{ID: 1, Name: "La Cevichería", Location: "Centro Histórico", Rating: 4.7, Specialties: []string{"ceviche", "pescado"}},
		})
	})
	env := clitest.New(t, mux, nil)

	require.NoError(t, (&RestaurantsCmd{Limit: 5}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "La Cevichería  ★ 4.7")
	assert.Contains(t, out, "Especialidades: ceviche, pescado")
}

func routeServer() *http.ServeMux {
	route := models.TourRoute{ID: 2, RouteName: "Ruta del Centro", Stops: []models.TourStop{
		{StopNumber: 1, StopName: "Torre del Reloj", ArrivalTime: "09:00:00", DepartureTime: "09:30:00"},
		{StopNumber: 2, StopName: "Plaza Santo Domingo", ArrivalTime: "10:00:00", DepartureTime: "10:45:00",
			LocationURL: "https://maps.example/santo-domingo"},
	}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/routes", func(w http.ResponseWriter, r *http.Request) {
		clitest.JSON(w, http.StatusOK, []models.TourRoute{route})
	})
	mux.HandleFunc("GET /api/v1/routes/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "2" {
			clitest.JSON(w, http.StatusNotFound, map[string]string{"detail": "Route not found"})
			return
		}
		clitest.JSON(w, http.StatusOK, route)
	})
	return mux
}

func TestRoutesListCmd(t *testing.T) {
	env := clitest.New(t, routeServer(), nil)

	require.NoError(t, (&RoutesListCmd{}).Run(env.Ctx))
	lines := strings.Split(env.Output(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[2], "Ruta del Centro")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "2"))
}

func TestRouteShowCmd(t *testing.T) {
	env := clitest.New(t, routeServer(), nil)

	require.NoError(t, (&RouteShowCmd{ID: 2}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "Ruta del Centro")
	assert.Contains(t, out, "llegada 09:00  salida 09:30")
	assert.Contains(t, out, "https://maps.example/santo-domingo")
}

func TestRouteShowCmd_NotFound(t *testing.T) {
	env := clitest.New(t, routeServer(), nil)

	err := (&RouteShowCmd{ID: 9}).Run(env.Ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
