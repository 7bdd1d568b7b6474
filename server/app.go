package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"huddle/config"
	"huddle/internal/auth"
	"huddle/internal/booking"
	"huddle/internal/db"
	"huddle/internal/directory"
	"huddle/internal/health"
	"huddle/internal/logs"
	"huddle/internal/middleware"
	"huddle/internal/repo"
	"huddle/internal/spaces"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	/* 1) Logs */
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	/* 2) Token codec: a missing secret is fatal here, never per request */
	codec, err := auth.NewCodec(a.cfg.Auth.JWTSecret, a.cfg.TokenTTL())
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}
	loc, err := a.cfg.Location()
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	/* 3) DB (optional) */
	if drv := a.cfg.Database.Driver; drv != "" {
		d, err := db.Open(drv, a.cfg.Database.DSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		a.db = d
		if err := db.Migrate(a.db); err != nil {
			log.Fatalf("db migrate failed: %v", err)
		}
	}

	/* 4) Router + middleware */
	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.LoggerMW,
	)

	/* 5) Health */
	if a.db != nil {
		health.RegisterRoutesWithDB(a.Router, a.db) // /healthz, /readyz
	} else {
		health.RegisterRoutes(a.Router) // /healthz only
	}

	authMW := auth.RequireAuth(codec)

	if a.db != nil {
		dirStore := repo.NewDirectoryStore(a.db)
		guard := auth.NewGuard(dirStore)
		engine := booking.NewEngine(repo.NewBookingStore(a.db), guard, loc)

		booking.RegisterRoutes(a.Router, booking.NewHandler(engine), authMW)
		spaces.RegisterRoutes(a.Router, spaces.NewHandler(repo.NewSpaceStore(a.db), engine), authMW)
		directory.RegisterRoutes(a.Router, directory.NewHandler(dirStore, codec, guard), authMW)

		a.bootstrapAdmin(dirStore)
	} else {
		// volatile mode: bookings only, state lost on restart, no
		// directory so no tokens can be issued; useful for smoke tests
		logs.Logger.Warn("running without a database: directory and space administration disabled")
		mem := booking.NewMemStore()
		engine := booking.NewEngine(mem, auth.NewGuard(mem), loc)
		booking.RegisterRoutes(a.Router, booking.NewHandler(engine), authMW)
	}

	/* (optional) print known routes at startup */
	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

// bootstrapAdmin seeds the configured administrator account if absent.
// Without it a fresh deployment has no way to mint the first admin token.
func (a *App) bootstrapAdmin(store *repo.DirectoryStore) {
	email, password := a.cfg.Auth.AdminEmail, a.cfg.Auth.AdminPassword
	if email == "" || password == "" {
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.EnsureAdmin(ctx, email, string(hashed)); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	// hard timeouts matter in production
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	return nil
}
