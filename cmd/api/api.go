package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/KAsare1/Kodefx-channels/cmd/utils"
	"github.com/KAsare1/Kodefx-channels/config"
	"github.com/KAsare1/Kodefx-channels/service/admin"
	"github.com/KAsare1/Kodefx-channels/service/broker"
	"github.com/KAsare1/Kodefx-channels/service/channels"
	"github.com/KAsare1/Kodefx-channels/service/moderation"
	"github.com/KAsare1/Kodefx-channels/service/profitplan"
	"github.com/KAsare1/Kodefx-channels/service/subscription"
	"github.com/KAsare1/Kodefx-channels/service/uploads"
	"github.com/KAsare1/Kodefx-channels/storage"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies are the collaborators shared by the feature handlers.
type Dependencies struct {
	DB       *gorm.DB
	Store    storage.Store
	Notifier subscription.Notifier
	Auth     admin.Authenticator
}

type APIServer struct {
	address string
	cfg     *config.Config
	deps    Dependencies
	server  *http.Server
}

func NewApiServer(cfg *config.Config, deps Dependencies) *APIServer {
	return &APIServer{
		address: ":" + cfg.ServerPort,
		cfg:     cfg,
		deps:    deps,
	}
}

// Handler builds the router with every feature mounted under /api.
func (s *APIServer) Handler() http.Handler {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api").Subrouter()
	requireAdmin := utils.AdminMiddleware([]byte(s.cfg.Admin.SecretKey))

	channels.NewHandler().RegisterRoutes(subrouter)
	uploads.NewHandler(s.deps.Store).RegisterRoutes(subrouter)
	admin.NewHandler(s.deps.Auth, []byte(s.cfg.Admin.SecretKey), s.cfg.Admin.TokenTTL).RegisterRoutes(subrouter)

	subscriptionHandler := subscription.NewSubscriptionHandler(s.deps.DB, s.deps.Notifier)
	subscriptionHandler.RegisterRoutes(subrouter, requireAdmin)

	profitPlanHandler := profitplan.NewHandler(s.deps.DB, s.deps.Store)
	profitPlanHandler.RegisterRoutes(subrouter, requireAdmin)

	brokerHandler := broker.NewHandler(s.deps.DB)
	brokerHandler.RegisterRoutes(subrouter, requireAdmin)

	moderationHandler := moderation.NewHandler(s.deps.DB)
	moderationHandler.RegisterRoutes(subrouter, requireAdmin)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	if local, ok := s.deps.Store.(*storage.LocalStore); ok {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(local.Dir()))),
		).Methods("GET", "HEAD")
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.ExposedHeaders([]string{"Content-Disposition", profitplan.DocumentIDHeader}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.StandardLogger()),
		handlers.PrintRecoveryStack(true),
	)

	return handlers.LoggingHandler(log.StandardLogger().Writer(), recovery(cors(router)))
}

// Run serves until Shutdown is called.
func (s *APIServer) Run() error {
	s.server = &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithField("address", s.address).Info("server running")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *APIServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
