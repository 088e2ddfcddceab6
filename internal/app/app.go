package app

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"church-app-go/internal/config"
	"church-app-go/internal/db"
	bootstrapdomain "church-app-go/internal/domain/bootstrap"
	caregroupdomain "church-app-go/internal/domain/caregroup"
	dashboarddomain "church-app-go/internal/domain/dashboard"
	memberdomain "church-app-go/internal/domain/member"
	ministrydomain "church-app-go/internal/domain/ministry"
	sessiondomain "church-app-go/internal/domain/session"
	settingdomain "church-app-go/internal/domain/setting"
	userdomain "church-app-go/internal/domain/user"
	"church-app-go/internal/repository/inmemory"
	bootstraprepo "church-app-go/internal/repository/postgres/bootstrap"
	caregrouprepo "church-app-go/internal/repository/postgres/caregroup"
	dashboardrepo "church-app-go/internal/repository/postgres/dashboard"
	memberrepo "church-app-go/internal/repository/postgres/member"
	ministryrepo "church-app-go/internal/repository/postgres/ministry"
	settingrepo "church-app-go/internal/repository/postgres/setting"
	userrepo "church-app-go/internal/repository/postgres/user"
	redisrepo "church-app-go/internal/repository/redis"
	"church-app-go/internal/transport/httpserver"
	"church-app-go/internal/transport/httpserver/handler"
	appmw "church-app-go/internal/transport/httpserver/middleware"
	"church-app-go/migrations"
	"church-app-go/pkg/logger"
	"church-app-go/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, db: dbConn, log: log}
	if err := a.init(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}

	router, err := NewHandler(ctx, a.cfg, a.db, store, a.log)
	if err != nil {
		return err
	}
	a.httpServer = httpserver.New(a.cfg, router)
	return nil
}

// NewHandler migrates and seeds the database, then assembles the HTTP handler
// with every service wired to Postgres and the given session store.
func NewHandler(ctx context.Context, cfg config.Config, dbConn *gorm.DB, store sessiondomain.Store, log logger.Logger) (http.Handler, error) {
	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn, migrations.FS, log); err != nil {
		return nil, err
	}
	if _, err := bootstrapdomain.NewService(bootstraprepo.NewPostgres(dbConn), log).Run(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	services := handler.Services{
		Users:      users,
		Members:    memberdomain.NewService(memberrepo.NewPostgres(dbConn)),
		CareGroups: caregroupdomain.NewService(caregrouprepo.NewPostgres(dbConn)),
		Ministries: ministrydomain.NewService(ministryrepo.NewPostgres(dbConn)),
		Settings:   settingdomain.NewService(settingrepo.NewPostgres(dbConn)),
		Dashboard:  dashboarddomain.NewService(dashboardrepo.NewPostgres(dbConn)),
	}

	sessionService := sessiondomain.NewService(sessiondomain.Config{
		Secret:           cfg.SecretKey,
		Lifetime:         cfg.Session.Lifetime,
		RememberDuration: cfg.Session.RememberDuration,
	}, store)
	sessions := appmw.NewSessions(cfg.Session, sessionService, users, log)

	views, err := handler.NewRenderer(web.Templates)
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return httpserver.NewRouter(cfg, httpserver.RouterDeps{
		Handlers: handler.New(services, sessions, views, cfg, log),
		Sessions: sessions,
		Metrics:  appmw.NewMetrics(registry),
		Gatherer: registry,
		Static:   static,
	}), nil
}

// sessionStore keeps revoked sessions in Redis when REDIS_URL is set so that
// logouts survive restarts and are shared between instances.
func (a *App) sessionStore(ctx context.Context) (sessiondomain.Store, error) {
	if a.cfg.Redis.URL == "" {
		a.log.Info("app: using in-memory session store")
		return inmemory.NewSessionStore(), nil
	}

	a.log.Info("app: connecting to redis")
	client, err := redisrepo.NewClient(ctx, a.cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	a.redis = client
	return redisrepo.NewSessionStore(client), nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("app: redis close failed", "err", err)
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
