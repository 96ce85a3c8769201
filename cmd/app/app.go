package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"converter/packages/common/config"
	"converter/packages/common/logger"
	"converter/packages/presentation/api"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

var appLogger = logger.NewSource("APP", logger.Default)

func Start(Router *echo.Echo) {
	stop := make(chan os.Signal, 1)

	signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		var err error

		if config.HTTP.Secured {
			err = Router.StartTLS(":"+config.HTTP.Port, config.HTTP.TLSCertFile, config.HTTP.TLSKeyFile)
		} else {
			err = Router.Start(":" + config.HTTP.Port)
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", err.Error(), nil)
		}
	}()

	printAppInfo()

	sig := <-stop

	println()
	appLogger.Info(sig.String()+" signal received, shutting down...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Router.Shutdown(ctx); err != nil {
		appLogger.Error("Failed to stop HTTP server", err.Error(), nil)
	} else {
		appLogger.Info("HTTP server stopped", nil)
	}

	Shutdown()
}

func Shutdown() {
	appLogger.Info("Shutting down...", nil)

	if config.Secret.SentryDSN != "" {
		if !sentry.Flush(2 * time.Second) {
			appLogger.Warning("Not all sentry events were sent", nil)
		}
	}

	if cacheDriver != nil {
		if err := cacheDriver.Close(); err != nil {
			appLogger.Error("Failed to disconnect from cache", err.Error(), nil)
		}
	}

	appLogger.Info("Shutted down", nil)

	if err := logger.Default.Stop(); err != nil {
		entry := logger.NewLogEntry(logger.ErrorLogLevel, "APP", "Failed to stop logger", err.Error(), nil)
		logger.Stderr.Log(&entry)
	}
}

func printAppInfo() {
	fmt.Print(`
   ██████╗  ██████╗  ███╗   ██╗ ██╗   ██╗ ███████╗ ██████╗  ████████╗
  ██╔════╝ ██╔═══██╗ ████╗  ██║ ██║   ██║ ██╔════╝ ██╔══██╗ ╚══██╔══╝
  ██║      ██║   ██║ ██╔██╗ ██║ ██║   ██║ █████╗   ██████╔╝    ██║
  ██║      ██║   ██║ ██║╚██╗██║ ╚██╗ ██╔╝ ██╔══╝   ██╔══██╗    ██║
  ╚██████╗ ╚██████╔╝ ██║ ╚████║  ╚████╔╝  ███████╗ ██║  ██║    ██║
   ╚═════╝  ╚═════╝  ╚═╝  ╚═══╝   ╚═══╝   ╚══════╝ ╚═╝  ╚═╝    ╚═╝

`)

	fmt.Println("  PHP project conversion gateway")

	fmt.Printf("  Environment: %s\n", environment)

	fmt.Printf("  Listening on: %s\n\n", api.GetBaseURL())

	if config.Debug.Enabled {
		appLogger.Warning("Debug mode enabled.", nil)
		print("\n\n")
	}
}
