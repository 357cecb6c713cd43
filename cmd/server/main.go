package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tkarls/microblog/internal/auth"
	"github.com/tkarls/microblog/internal/config"
	"github.com/tkarls/microblog/internal/feed"
	"github.com/tkarls/microblog/internal/microposts"
	"github.com/tkarls/microblog/internal/middleware"
	"github.com/tkarls/microblog/internal/store"
	"github.com/tkarls/microblog/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		log.Fatalf("postgres migrate: %v", err)
	}

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()
	sessions := auth.NewSessionStore(rdb)

	// ── Auth core ────────────────────────────────────────────
	verifier := auth.NewVerifier(pgStore)
	manager := auth.NewManager(pgStore, sessions)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(verifier, manager)
	usersHandler := users.NewHandler(pgStore, manager, cfg.BcryptCost)
	micropostHandler := microposts.NewHandler(mongoStore)
	feedHandler := feed.NewHandler(mongoStore)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Authenticate(manager))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public
	r.Get("/", feedHandler.Home)
	r.Get("/signin", authHandler.SigninPage)
	r.Post("/signin", authHandler.Signin)
	r.Delete("/signout", authHandler.Signout)
	r.Post("/signout", authHandler.Signout) // plain form fallback
	r.Get("/signup", usersHandler.SignupPage)
	r.Post("/users", usersHandler.Create)
	r.Get("/users/{id}", usersHandler.Show)

	// Signed-in only
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSignIn)
		r.Get("/users", usersHandler.Index)
		r.Get("/users/{id}/edit", usersHandler.EditPage)
		r.Put("/users/{id}", usersHandler.Update)
		r.Delete("/users/{id}", usersHandler.Destroy)
		r.Post("/microposts", micropostHandler.Create)
		r.Delete("/microposts/{id}", micropostHandler.Destroy)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
