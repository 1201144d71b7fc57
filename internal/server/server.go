package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/parchados/parchados-services/api/internal/auth"
	"github.com/parchados/parchados-services/api/internal/config"
	"github.com/parchados/parchados-services/api/internal/infrastructure/cloudinary"
	mongodoc "github.com/parchados/parchados-services/api/internal/infrastructure/mongo"
	adminhttp "github.com/parchados/parchados-services/api/internal/interfaces/http/admin"
	commonhttp "github.com/parchados/parchados-services/api/internal/interfaces/http/common"
	publichttp "github.com/parchados/parchados-services/api/internal/interfaces/http/public"
	"github.com/parchados/parchados-services/api/internal/places/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Server is the composition root: it owns the Mongo client, the live place
// store and its subscription lifecycle, and wires the application services
// into the HTTP routers.
type Server struct {
	logger         *zap.Logger
	client         *mongo.Client
	store          *application.PlaceStore
	moderator      *application.Moderator
	drafts         *application.DraftSessions
	composer       *application.ReviewComposer
	authService    *auth.Service
	addr           string
	allowedOrigins []string
}

// New assembles the server from config and a connected Mongo client.
func New(cfg config.Config, client *mongo.Client, logger *zap.Logger) *Server {
	database := client.Database(cfg.MongoDatabase)

	placeRepo := mongodoc.NewPlaceRepository(database, cfg.PlaceCollection, logger)
	userRepo := mongodoc.NewUserRepository(database, cfg.UserCollection)
	reviewRepo := mongodoc.NewReviewRepository(database, cfg.ReviewCollection)
	resetRepo := mongodoc.NewResetRepository(database, cfg.ResetCollection)

	authService := auth.NewService(userRepo, resetRepo, auth.Config{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TokenTTL: cfg.TokenTTL,
	}, logger)

	store := application.NewPlaceStore(placeRepo, logger)
	moderator := application.NewModerator(placeRepo, store, cfg.ModerationRequirePending)
	composer := application.NewReviewComposer(store, reviewRepo, authService, logger)

	uploader := cloudinary.NewUploader(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset, logger)
	drafts := application.NewDraftSessions(func() *application.Wizard {
		return application.NewWizard(placeRepo, uploader, authService)
	})

	return &Server{
		logger:         logger,
		client:         client,
		store:          store,
		moderator:      moderator,
		drafts:         drafts,
		composer:       composer,
		authService:    authService,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
}

// Run starts the live subscription and the HTTP server, blocking until a
// shutdown signal or a fatal listen error.
func (s *Server) Run() error {
	s.store.Start()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	bearer := commonhttp.BearerAuth(s.authService, s.logger)

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:   s.logger,
		Store:    s.store,
		Drafts:   s.drafts,
		Composer: s.composer,
		Auth:     s.authService,
	})
	publicHandler.Register(router, bearer)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:    s.logger,
		Store:     s.store,
		Moderator: s.moderator,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(bearer)
		r.Use(commonhttp.RequireAdmin(s.logger))
		adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("servidor HTTP iniciado", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	return s.waitForShutdown(httpServer, errChan)
}

func (s *Server) waitForShutdown(httpServer *http.Server, errChan <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.shutdown()
			return err
		}
	case sig := <-sigChan:
		s.logger.Info("señal recibida, deteniendo el servidor", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Warn("error al detener el servidor HTTP", zap.Error(err))
		}
	}

	s.shutdown()
	return nil
}

// shutdown cancels the live subscription and disconnects Mongo.
func (s *Server) shutdown() {
	s.store.Close()
	select {
	case <-s.store.Done():
	case <-time.After(5 * time.Second):
		s.logger.Warn("la suscripción de lugares no terminó a tiempo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		s.logger.Warn("error al desconectar MongoDB", zap.Error(err))
	}
}

// healthHandler reports Mongo reachability for monitoring.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// withCORS adds CORS headers for the allowed origins.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}
