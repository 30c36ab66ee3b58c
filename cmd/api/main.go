package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Vileyy/admin-halora-sub001/internal/modules/auth"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/brand"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/catalog"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/document"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/inventory"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/order"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/sync"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/user"
	"github.com/Vileyy/admin-halora-sub001/internal/modules/voucher"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("APP_ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().Msg("connected to database")

	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	// account management is admin-only
	user.NewHandler(userService).RegisterRoutes(router, auth.RequireAuth(jwtKey), auth.RequireAdmin)

	authService := auth.NewService(userRepo, jwtKey)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Catalog & Brands ────────────────────────────────────
	brandRepo := brand.NewPostgresRepository(db)
	brandService := brand.NewService(brandRepo)
	brand.NewHandler(brandService).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Inventory ───────────────────────────────────────────
	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo, catalogRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	watcher := inventory.NewWatcher(dsn, inventoryService)
	go func() {
		if err := watcher.Run(context.Background()); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("inventory watcher stopped")
		}
	}()

	// ── Vouchers & Orders ───────────────────────────────────
	voucherRepo := voucher.NewPostgresRepository(db)
	voucherService := voucher.NewService(voucherRepo)
	voucher.NewHandler(voucherService).RegisterRoutes(router)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, catalogRepo, inventoryRepo, voucherService)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Catalog/Inventory Reconciliation ────────────────────
	syncRuns := sync.NewPostgresRepository(db)
	syncService := sync.NewService(catalogRepo, inventoryRepo, syncRuns)
	sync.NewHandler(syncService).RegisterRoutes(router)

	// ── Documents & File Hosting ────────────────────────────
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	providers := document.ProviderRegistry{
		"local": document.NewLocalProvider(uploadsDir, baseURL),
	}
	if key := os.Getenv("FILE_HOST_API_KEY"); key != "" {
		providers["hosted"] = document.NewHostedProvider(key, os.Getenv("FILE_HOST_BASE_URL"))
	}
	documentRepo := document.NewPostgresRepository(db)
	documentService := document.NewService(documentRepo, providers, "local")
	document.NewHandler(documentService).RegisterRoutes(router)

	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("Halora admin API starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
