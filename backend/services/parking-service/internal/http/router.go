package httpserver

import "net/http"

// Routes groups the service handlers. Nil entries are skipped so tests can
// wire partial routers.
type Routes struct {
	Login http.HandlerFunc

	RegisterClient  http.HandlerFunc
	RegisterVehicle http.HandlerFunc

	CreateLot  http.HandlerFunc
	ListLots   http.HandlerFunc
	GrantSpots http.HandlerFunc

	CheckIn         http.HandlerFunc
	CheckOut        http.HandlerFunc
	ContractService http.HandlerFunc

	TotalRevenue    http.HandlerFunc
	RevenueInMonth  http.HandlerFunc
	AverageFee      http.HandlerFunc
	TopClients      http.HandlerFunc
	SubscriberUsage http.HandlerFunc
	RevenueByLot    http.HandlerFunc

	SaveSnapshot  http.HandlerFunc
	OccupancyFeed http.HandlerFunc
	Health        http.HandlerFunc

	// Authorize guards mutating endpoints when set.
	Authorize func(http.Handler) http.Handler
}

// NewRouter registers all endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()

	guarded := func(h http.HandlerFunc) http.Handler {
		if h == nil {
			return nil
		}
		if routes.Authorize == nil {
			return h
		}
		return routes.Authorize(h)
	}
	register := func(pattern string, h http.Handler) {
		if h != nil {
			mux.Handle(pattern, h)
		}
	}
	registerFunc := func(pattern string, h http.HandlerFunc) {
		if h != nil {
			mux.Handle(pattern, h)
		}
	}

	registerFunc("POST /auth/login", routes.Login)
	registerFunc("GET /health", routes.Health)
	registerFunc("GET /ws/occupancy", routes.OccupancyFeed)

	register("POST /clients", guarded(routes.RegisterClient))
	register("POST /clients/{client}/vehicles", guarded(routes.RegisterVehicle))

	register("POST /lots", guarded(routes.CreateLot))
	registerFunc("GET /lots", routes.ListLots)
	register("POST /lots/{lot}/spots", guarded(routes.GrantSpots))

	register("POST /lots/{lot}/check-in", guarded(routes.CheckIn))
	register("POST /lots/{lot}/check-out", guarded(routes.CheckOut))
	register("POST /lots/{lot}/services", guarded(routes.ContractService))

	registerFunc("GET /lots/{lot}/reports/revenue", routes.TotalRevenue)
	registerFunc("GET /lots/{lot}/reports/revenue/{month}", routes.RevenueInMonth)
	registerFunc("GET /lots/{lot}/reports/average-fee", routes.AverageFee)
	registerFunc("GET /lots/{lot}/reports/top-clients", routes.TopClients)
	registerFunc("GET /lots/{lot}/reports/subscriber-usage", routes.SubscriberUsage)
	registerFunc("GET /reports/revenue-by-lot", routes.RevenueByLot)

	register("POST /admin/snapshot", guarded(routes.SaveSnapshot))

	return mux
}
