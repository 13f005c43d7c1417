package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hdtbpedro/web-shop-direct/internal/auth"
	"github.com/hdtbpedro/web-shop-direct/internal/cart"
	"github.com/hdtbpedro/web-shop-direct/internal/cartlink"
	"github.com/hdtbpedro/web-shop-direct/internal/catalog"
	"github.com/hdtbpedro/web-shop-direct/internal/checkout"
	h "github.com/hdtbpedro/web-shop-direct/internal/http"
	"github.com/hdtbpedro/web-shop-direct/internal/store"
)

type Config struct {
	HTTPPort        string
	BaseURL         string
	StoreBackend    string
	RedisAddr       string
	RedisPassword   string
	MongoURI        string
	MongoDBName     string
	SQLitePath      string
	MigrationsPath  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	port := getEnv("HTTP_PORT", "8080")
	return &Config{
		HTTPPort:        port,
		BaseURL:         getEnv("BASE_URL", fmt.Sprintf("http://localhost:%s", port)),
		StoreBackend:    getEnv("STORE_BACKEND", "memory"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "webshop"),
		SQLitePath:      getEnv("SQLITE_PATH", "webshop.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func openStore(ctx context.Context, cfg *Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore(), func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)
		return store.NewRedisStore(client), func() { client.Close() }, nil

	case "mongo":
		db, err := store.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)
		cleanup := func() {
			if err := db.Client().Disconnect(context.Background()); err != nil {
				log.Printf("mongo disconnect error: %v", err)
			}
		}
		return store.NewMongoStore(db), cleanup, nil

	case "sqlite":
		st, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := st.RunMigrations(cfg.MigrationsPath); err != nil {
			st.Close()
			return nil, nil, err
		}
		log.Printf("Opened SQLite store at %s", cfg.SQLitePath)
		return st, func() { st.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	catalogService := catalog.NewService(st)
	if err := catalogService.Load(ctx); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d products", len(catalogService.Products()))

	cartService := cart.NewService(st, catalogService)
	if err := cartService.Load(ctx); err != nil {
		log.Fatalf("Failed to load cart: %v", err)
	}

	gate := auth.NewGate(st)
	if err := gate.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed admin credentials: %v", err)
	}

	settings := checkout.NewSettings(st)
	applier := cartlink.NewApplier(cartService, catalogService)

	productHandler := h.NewProductHandler(catalogService)
	cartHandler := h.NewCartHandler(cartService, catalogService, applier, settings, cfg.BaseURL)
	adminHandler := h.NewAdminHandler(gate, settings)

	router := h.NewRouter(productHandler, cartHandler, adminHandler, gate, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s (store backend: %s)", cfg.HTTPPort, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
