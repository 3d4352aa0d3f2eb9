package routes

import (
	"fmt"
	"net/http"

	"devhub/booking"
	"devhub/events"
	"devhub/home"
	"devhub/ratelim"

	"github.com/julienschmidt/httprouter"
)

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func AddHealthRoutes(router *httprouter.Router) {
	router.GET("/health", Index)
}

func AddHomeRoutes(router *httprouter.Router, h *home.Handler) {
	router.GET("/api/home", h.GetHome)
	router.GET("/api/home/:section", h.GetHomeContent)
}

func AddEventsRoutes(router *httprouter.Router, h *events.Handlers) {
	router.GET("/api/events", h.GetEvents)
	router.POST("/api/events", h.CreateEvent)
	router.GET("/api/events/:slug", h.GetEvent)
	router.PATCH("/api/events/:slug", h.UpdateEvent)
}

func AddBookingRoutes(router *httprouter.Router, h *booking.Handlers, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/events/:slug/bookings", h.GetBookingCount)
	router.POST("/api/bookings", rateLimiter.Limit(h.CreateBooking))
	router.PATCH("/api/bookings/:id", rateLimiter.Limit(h.UpdateBooking))
}

// Deps bundles the handlers a router is built from.
type Deps struct {
	Home        *home.Handler
	Events      *events.Handlers
	Bookings    *booking.Handlers
	RateLimiter *ratelim.RateLimiter
}

// New builds the router with every route registered.
func New(d Deps) *httprouter.Router {
	router := httprouter.New()
	AddHealthRoutes(router)
	AddHomeRoutes(router, d.Home)
	AddEventsRoutes(router, d.Events)
	AddBookingRoutes(router, d.Bookings, d.RateLimiter)
	return router
}
