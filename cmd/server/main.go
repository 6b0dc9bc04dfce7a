package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/wanderstay/wanderstay/internal/auth"
	"github.com/wanderstay/wanderstay/internal/config"
	"github.com/wanderstay/wanderstay/internal/listings"
	"github.com/wanderstay/wanderstay/internal/middleware"
	"github.com/wanderstay/wanderstay/internal/session"
	"github.com/wanderstay/wanderstay/internal/store"
	"github.com/wanderstay/wanderstay/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET must be set")
		os.Exit(1)
	}

	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	mongoClient, err := store.Connect(connectCtx, cfg.MongoURI)
	cancel()
	if err != nil {
		slog.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	defer mongoClient.Disconnect(ctx)

	db := mongoClient.Database(cfg.MongoDB)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		slog.Error("ensure indexes failed", "error", err)
		os.Exit(1)
	}
	listingStore := store.NewListingStore(db)
	userStore := store.NewUserStore(db)

	// ── Sessions ─────────────────────────────────────────────
	var sessionStore session.Store
	switch cfg.SessionBackend {
	case "redis":
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Error("redis connect failed", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		sessionStore = session.NewRedisStore(rdb)
	default:
		sessionStore = session.NewMongoStore(db)
	}
	sessions := session.NewManager(sessionStore, session.Options{Secret: cfg.SessionSecret})

	// ── Views and handlers ───────────────────────────────────
	v, err := view.New()
	if err != nil {
		slog.Error("template parse failed", "error", err)
		os.Exit(1)
	}

	authenticator := auth.NewAuthenticator(userStore)
	authHandler := auth.NewHandler(authenticator, sessions, v)
	listingHandler := listings.NewHandler(listingStore, v)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.RealIP)
	r.Use(middleware.MethodOverride)
	r.Use(middleware.Recover(v))
	r.Use(sessions.Middleware)
	r.Use(middleware.CurrentUser(authenticator))

	r.Get("/", v.Wrap(listingHandler.Index))
	r.Get("/about", v.Wrap(listingHandler.About))

	r.Route("/listings", func(r chi.Router) {
		r.Get("/", v.Wrap(listingHandler.Index))
		r.Post("/search", v.Wrap(listingHandler.Search))
		r.Get("/{id}", v.Wrap(listingHandler.Show))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/new", v.Wrap(listingHandler.New))
			r.Post("/", v.Wrap(listingHandler.Create))
			r.Get("/{id}/edit", v.Wrap(listingHandler.Edit))
			r.Put("/{id}", v.Wrap(listingHandler.Update))
			r.Delete("/{id}", v.Wrap(listingHandler.Delete))
		})
	})

	r.Get("/signup", v.Wrap(authHandler.ShowSignup))
	r.Get("/login", v.Wrap(authHandler.ShowLogin))
	r.Get("/logout", v.Wrap(authHandler.Logout))
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(v, 5, 10))
		r.Post("/signup", v.Wrap(authHandler.Signup))
		r.Post("/login", v.Wrap(authHandler.Login))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		v.Error(w, r, http.StatusNotFound, "Page Not Found!")
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "session_backend", cfg.SessionBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
}
