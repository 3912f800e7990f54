package handlers

import (
	"InvKeeper/internal/config"
	"InvKeeper/internal/middleware"
	"InvKeeper/internal/service"
	"InvKeeper/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	authService *service.AuthService,
	sessions *session.Manager,
	itemService *service.ItemService,
	locationService *service.LocationService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithSession(sessions))

	// Handlers
	authHandler := NewAuthHandler(authService, sessions, logger, config)
	itemHandler := NewItemHandler(itemService, logger)
	locationHandler := NewLocationHandler(locationService, authService, logger)

	// Auth routes
	r.Get("/ping", authHandler.Ping)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/me", authHandler.Me)
	r.Get("/user-qr/{user_id}", authHandler.UserQR)

	// Item routes
	r.Get("/items", itemHandler.List)
	r.Post("/items/create", itemHandler.Create)
	r.Patch("/change-item-status", itemHandler.ChangeStatus)
	r.Patch("/change-item-location", itemHandler.ChangeLocation)
	r.Patch("/change-item-quantity", itemHandler.ChangeQuantity)
	r.Patch("/change-item-image", itemHandler.ChangeImage)
	r.Patch("/add-borrower", itemHandler.AddBorrower)

	// Location routes
	r.Get("/locations", locationHandler.List)
	r.Post("/locations/create", locationHandler.Create)
	r.Patch("/locations/edit-status", locationHandler.EditStatus)
	r.Delete("/locations/{location_id}", locationHandler.Delete)

	return &Handler{Router: r}
}
