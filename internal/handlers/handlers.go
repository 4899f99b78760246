package handlers

import (
	"ShareIt/internal/config"
	"ShareIt/internal/middleware"
	"ShareIt/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services: сервисы, которые обслуживают HTTP API.
type Services struct {
	Users    *service.UserService
	Items    *service.ItemService
	Bookings *service.BookingService
	Requests *service.RequestService
}

// NewHandler разводящий для хендлеров
func NewHandler(svc Services, logger *zap.SugaredLogger, config *config.Config) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(svc.Users, logger, config)
	itemHandler := NewItemHandler(svc.Items, logger, config)
	bookingHandler := NewBookingHandler(svc.Bookings, logger, config)
	requestHandler := NewRequestHandler(svc.Requests, logger, config)

	// User routes
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/me", userHandler.Me)
		r.Get("/{userId}", userHandler.Get)
		r.Patch("/{userId}", userHandler.Update)
		r.Delete("/{userId}", userHandler.Delete)
	})

	// Item routes
	r.Route("/items", func(r chi.Router) {
		r.Post("/", itemHandler.Create)
		r.Get("/", itemHandler.ListOwn)
		r.Get("/search", itemHandler.Search)
		r.Get("/{itemId}", itemHandler.Get)
		r.Patch("/{itemId}", itemHandler.Update)
		r.Post("/{itemId}/comment", itemHandler.Comment)
	})

	// Booking routes
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.Create)
		r.Get("/", bookingHandler.ListBooker)
		r.Get("/owner", bookingHandler.ListOwner)
		r.Get("/{bookingId}", bookingHandler.Get)
		r.Patch("/{bookingId}", bookingHandler.Approve)
	})

	// Request routes
	r.Route("/requests", func(r chi.Router) {
		r.Post("/", requestHandler.Create)
		r.Get("/", requestHandler.ListOwn)
		r.Get("/all", requestHandler.ListAll)
		r.Get("/{requestId}", requestHandler.Get)
	})

	return &Handler{Router: r}
}
