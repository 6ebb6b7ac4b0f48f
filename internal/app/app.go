package app

import (
	"net/http"

	"botram-go/internal/auth"
	"botram-go/internal/config"
	"botram-go/internal/db"
	cartdomain "botram-go/internal/domain/cart"
	customerdomain "botram-go/internal/domain/customer"
	groupdomain "botram-go/internal/domain/group"
	invitationdomain "botram-go/internal/domain/invitation"
	memberdomain "botram-go/internal/domain/member"
	"botram-go/internal/domain/notification"
	orderdomain "botram-go/internal/domain/order"
	"botram-go/internal/notifier/redispub"
	cartrepo "botram-go/internal/repository/postgres/cart"
	catalogrepo "botram-go/internal/repository/postgres/catalog"
	customerrepo "botram-go/internal/repository/postgres/customer"
	grouprepo "botram-go/internal/repository/postgres/group"
	invitationrepo "botram-go/internal/repository/postgres/invitation"
	memberrepo "botram-go/internal/repository/postgres/member"
	orderrepo "botram-go/internal/repository/postgres/order"
	"botram-go/internal/transport/httpserver"
	"botram-go/internal/transport/httpserver/handler"
	authmw "botram-go/internal/transport/httpserver/middleware"
	"botram-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	notifier   *redispub.Notifier
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	var redisNotifier *redispub.Notifier
	var notifier notification.Notifier = notification.NewNoop()
	if cfg.Redis.Addr != "" {
		log.Info("app: initializing redis notifier", "addr", cfg.Redis.Addr)
		redisNotifier, err = redispub.New(cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		notifier = redisNotifier
	}

	catalog := catalogrepo.NewPostgres(dbConn)

	customers := customerdomain.NewService(customerrepo.NewPostgres(dbConn))
	groups := groupdomain.NewService(grouprepo.NewPostgres(dbConn))
	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	invitations := invitationdomain.NewService(invitationrepo.NewPostgres(dbConn))
	carts := cartdomain.NewService(cartrepo.NewPostgres(dbConn), catalog)
	orders := orderdomain.NewService(orderrepo.NewPostgres(dbConn), notifier, log)

	handlers := handler.New(customers, groups, members, invitations, carts, orders, log)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)
	jwtAuth := authmw.NewJWTAuth(jwtManager, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(handlers, jwtAuth)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		notifier:   redisNotifier,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil {
			return err
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
