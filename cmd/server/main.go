package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	userservice "github.com/goliatone/user-service"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("users"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	if err := run(lgr); err != nil {
		lgr.GetLogger("main").Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(lgr *glog.BaseLogger) error {
	cfg, err := userservice.LoadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DBDSN)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "unable to open database")
	}
	defer sqldb.Close()

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := userservice.Migrate(ctx, db); err != nil {
		return err
	}

	users := userservice.NewUsersRepository(db)

	tokens := userservice.NewTokenService(
		[]byte(cfg.JWTSecret),
		cfg.JWTExpirationMs,
		cfg.JWTIssuer,
		lgr.GetLogger("tokens"),
	)

	auther := userservice.NewAuthenticator(users, tokens).
		WithLogger(lgr.GetLogger("auth"))

	app := fiber.New(fiber.Config{
		AppName:      "user-service",
		ErrorHandler: userservice.ErrorHandler(lgr.GetLogger("http")),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	authorizer := userservice.RequestAuthorizer(userservice.AuthorizerConfig{
		Tokens: tokens,
		Users:  users,
		Logger: lgr.GetLogger("authorizer"),
	})

	controller := userservice.NewUserController(
		users,
		auther,
		userservice.WithControllerLogger(lgr.GetLogger("controller")),
	)
	controller.RegisterRoutes(app, authorizer)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- app.Listen(fmt.Sprintf(":%d", cfg.Port))
	}()

	lgr.GetLogger("main").Info("Server listening", "port", cfg.Port, "env", cfg.Env)

	select {
	case err := <-srvErr:
		return err
	case sig := <-waitExitSignal():
		lgr.GetLogger("main").Info("Shutting down", "signal", sig.String())
		return app.Shutdown()
	}
}

func waitExitSignal() chan os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return ch
}
