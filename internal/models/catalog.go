package models

type Dish struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Restaurant     string   `json:"restaurant"`
	Rating         float64  `json:"rating"`
	Description    string   `json:"description"`
	HealthBenefits string   `json:"health_benefits"`
	Category       string   `json:"category"`
	PriceUSD       float64  `json:"price_usd"`
	PriceCOP       float64  `json:"price_cop"`
	PriceDelivery  *float64 `json:"price_delivery"`
	MainProtein    string   `json:"main_protein"`
	Ingredients    []string `json:"ingredients"`
	IsActive       bool     `json:"is_active"`
}

type Restaurant struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Rating      float64  `json:"rating"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Specialties []string `json:"specialties"`
}

type TourStop struct {
	ID            int    `json:"id"`
	RouteName     string `json:"route_name"`
	StopNumber    int    `json:"stop_number"`
	StopName      string `json:"stop_name"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
	LocationURL   string `json:"location_url"`
}

type TourRoute struct {
	ID        int        `json:"id"`
	RouteName string     `json:"route_name"`
	Stops     []TourStop `json:"stops"`
}
