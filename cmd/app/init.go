package app

import (
	"os"
	"strconv"

	"converter/packages/common/config"
	"converter/packages/common/logger"
	"converter/packages/infrastructure/cache/redis"
	"converter/packages/presentation/api/http/cookie"
	Middleware "converter/packages/presentation/api/http/middleware"
	"converter/packages/presentation/api/http/router"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
)

// nil if memory rate limit store is used
var cacheDriver *redis.Driver

// Parsed once from config, decides cookie security policy and sentry environment.
var environment cookie.Environment

func StartInit() {
	// All init logs will be shown anyway
	if err := logger.Default.NewForwarding(logger.Stdout); err != nil {
		panic(err.Error())
	}
}

func EndInit() {
	if !config.App.ShowLogs && !*Args.ShowLogs {
		if err := logger.Default.RemoveForwarding(logger.Stdout); err != nil {
			panic(err.Error())
		}
	}
}

func InitDefault() {
	config.Init(*Args.ConfigPath)

	environment = cookie.ParseEnvironment(config.App.Environment)

	logger.Debug.Store(config.Debug.Enabled || *Args.Debug)
	logger.Trace.Store(config.App.TraceLogsEnabled || *Args.TraceLogs)

	if err := logger.Default.Start(config.App.LogDir); err != nil {
		appLogger.Fatal("Failed to start logger", err.Error(), nil)
	}
}

func InitConnections() {
	if config.RateLimit.Store != config.RedisRateLimitStore {
		return
	}

	appLogger.Info("Initializng connections...", nil)

	cacheDriver = redis.New(&goredis.Options{
		Addr:         config.Secret.CacheURI,
		Password:     config.Secret.CachePassword,
		DB:           config.Secret.CacheDB,
		ReadTimeout:  config.Cache.SocketTimeout(),
		WriteTimeout: config.Cache.SocketTimeout(),
	}, config.Cache.OperationTimeout())

	if err := cacheDriver.Connect(); err != nil {
		appLogger.Fatal("Failed to initialize connections", err.Error(), nil)
	}

	appLogger.Info("Initializng connections: OK", nil)
}

func InitRateLimiter() *Middleware.RateLimiter {
	if cacheDriver == nil {
		appLogger.Info("Using in-memory rate limit store", nil)
		return Middleware.NewMemoryRateLimiter()
	}

	appLogger.Info("Using redis rate limit store", nil)

	return Middleware.NewSharedRateLimiter(cacheDriver)
}

// Returns true if sentry was initialized.
func InitSentry() bool {
	if config.Secret.SentryDSN == "" {
		appLogger.Info("Sentry DSN isn't set, error reporting disabled", nil)
		return false
	}

	appLogger.Info("Initializng sentry...", nil)

	hostname, _ := os.Hostname()

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.Secret.SentryDSN,
		Environment:      environment.String(),
		ServerName:       config.App.ServiceID + "@" + hostname,
		EnableTracing:    config.Sentry.TraceSampleRate > 0,
		TracesSampleRate: config.Sentry.TraceSampleRate,
		Debug:            config.Debug.Enabled,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize sentry", err.Error(), nil)
	}

	appLogger.Info("Initializng sentry: OK (trace sample rate: "+strconv.FormatFloat(config.Sentry.TraceSampleRate, 'f', -1, 64)+")", nil)

	return true
}

func InitRouter(rateLimiter *Middleware.RateLimiter, sentryEnabled bool) *echo.Echo {
	appLogger.Info("Initializng router...", nil)

	cookies := cookie.NewManager(environment, config.HTTP.CookieDomain)

	Router := router.Create(cookies, rateLimiter, sentryEnabled)

	appLogger.Info("Initializng router: OK", nil)

	return Router
}
