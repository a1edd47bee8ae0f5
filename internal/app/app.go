package app

import (
	"net/http"

	"gorm.io/gorm"
	"kinship-app-go/internal/auth"
	"kinship-app-go/internal/config"
	"kinship-app-go/internal/db"
	confirmationdomain "kinship-app-go/internal/domain/confirmation"
	memberdomain "kinship-app-go/internal/domain/member"
	treedomain "kinship-app-go/internal/domain/tree"
	"kinship-app-go/internal/metrics"
	"kinship-app-go/internal/notify"
	"kinship-app-go/internal/repository/inmemory"
	confirmationrepo "kinship-app-go/internal/repository/postgres/confirmation"
	memberrepo "kinship-app-go/internal/repository/postgres/member"
	treerepo "kinship-app-go/internal/repository/postgres/tree"
	"kinship-app-go/internal/transport/httpserver"
	"kinship-app-go/internal/transport/httpserver/handler"
	authmw "kinship-app-go/internal/transport/httpserver/middleware"
	"kinship-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
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

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	m := metrics.New()

	members := memberdomain.NewService(
		memberrepo.NewPostgres(dbConn),
		memberdomain.WithCache(inmemory.NewInMemoryMemberCache()),
		memberdomain.WithMetrics(m),
		memberdomain.WithIssueAttempts(cfg.Kinship.MaxIssueAttempts),
		memberdomain.WithBcryptCost(cfg.Auth.BcryptCost),
	)

	trees := treedomain.NewService(treerepo.NewPostgres(dbConn))
	trees.SetTraversalDepth(cfg.Kinship.TraversalDepth)

	gate := confirmationdomain.NewGate(members, trees)
	confirmations := confirmationdomain.NewService(
		confirmationrepo.NewPostgres(dbConn),
		gate,
		confirmationdomain.WithNotifier(notify.NewLogNotifier(log)),
		confirmationdomain.WithMetrics(m),
	)

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	log.Info("app: initializing router")
	handlers := handler.New(members, trees, confirmations, tokens, log)
	jwtAuth := authmw.NewJWTAuth(tokens, members, log)
	router := httpserver.NewRouter(cfg, handlers, jwtAuth, log)

	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
