package router

import (
	"net/http"
	"time"

	"converter/packages/common/config"
	"converter/packages/common/logger"
	AnalysisController "converter/packages/presentation/api/http/controllers/analysis"
	AuthController "converter/packages/presentation/api/http/controllers/auth"
	HealthController "converter/packages/presentation/api/http/controllers/health"
	"converter/packages/presentation/api/http/cookie"
	Middleware "converter/packages/presentation/api/http/middleware"
	"converter/packages/presentation/api/http/request"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var log = logger.NewSource("ROUTER", logger.Default)

// i could just explicitly pass empty string in routes when i need it
// but it looks really awful and not obvious
const rootPath = ""

type RateLimits struct {
	Window           time.Duration
	APIRequests      int
	AuthRequests     int
	AnalysisRequests int
}

type Options struct {
	Cookies        *cookie.Manager
	RateLimiter    *Middleware.RateLimiter
	RateLimits     RateLimits
	AllowedOrigins []string
	BodyLimit      string
	// Sentry must be initialized before router creation
	Sentry bool
	Debug  bool
}

// Creates router using global config.
func Create(cookies *cookie.Manager, rateLimiter *Middleware.RateLimiter, sentryEnabled bool) *echo.Echo {
	return New(Options{
		Cookies:     cookies,
		RateLimiter: rateLimiter,
		RateLimits: RateLimits{
			Window:           config.RateLimit.Window(),
			APIRequests:      config.RateLimit.APIRequests,
			AuthRequests:     config.RateLimit.AuthRequests,
			AnalysisRequests: config.RateLimit.AnalysisRequests,
		},
		AllowedOrigins: config.HTTP.AllowedOrigins,
		BodyLimit:      config.HTTP.BodyLimit,
		Sentry:         sentryEnabled,
		Debug:          config.Debug.Enabled,
	})
}

func New(opt Options) *echo.Echo {
	log.Info("Creating router...", nil)

	router := echo.New()

	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = handleHTTPError
	router.JSONSerializer = serializer{}
	router.Binder = &binder{}

	cors := middleware.CORSConfig{
		Skipper:          middleware.DefaultSkipper,
		AllowOrigins:     opt.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowHeaders: []string{
			echo.HeaderContentType,
			Middleware.CSRFHeader,
		},
	}

	router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	router.Use(request.Middleware)
	router.Use(middleware.Recover())
	router.Use(Middleware.SecurityHeaders)
	router.Use(middleware.BodyLimit(opt.BodyLimit))
	router.Use(middleware.CORSWithConfig(cors))
	router.Use(Middleware.CheckOrigin(opt.AllowedOrigins))

	if opt.Sentry {
		router.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	if opt.Debug {
		router.Use(middleware.Logger())
	}

	router.GET("/health", HealthController.New(opt.Cookies.Environment()))

	limits := opt.RateLimits

	apiGroup := router.Group("/api", opt.RateLimiter.Limit(Middleware.RateLimitPolicy{
		Scope:       "api",
		Requests:    limits.APIRequests,
		Window:      limits.Window,
		Sensitivity: Middleware.InsignificantEndpoint,
	}))

	authLimit := opt.RateLimiter.Limit(Middleware.RateLimitPolicy{
		Scope:       "auth",
		Requests:    limits.AuthRequests,
		Window:      limits.Window,
		Sensitivity: Middleware.SensitiveEndpoint,
	})

	auth := AuthController.New(opt.Cookies)

	authGroup := apiGroup.Group("/auth", Middleware.NoCache)

	authGroup.GET("/csrf-token", auth.GetCSRFToken)
	authGroup.GET("/session", auth.GetSession)
	authGroup.PUT("/session", auth.PutSession, authLimit, Middleware.DoubleSubmitCSRF)
	authGroup.DELETE("/session", auth.DeleteSession, authLimit, Middleware.DoubleSubmitCSRF)
	// Same path as refresh token cookie has
	authGroup.DELETE("/refresh", auth.DeleteRefreshToken, authLimit, Middleware.DoubleSubmitCSRF)

	analysisLimit := opt.RateLimiter.Limit(Middleware.RateLimitPolicy{
		Scope:       "analysis",
		Requests:    limits.AnalysisRequests,
		Window:      limits.Window,
		Sensitivity: Middleware.DefaultEndpoint,
	})

	apiGroup.POST("/analyze", AnalysisController.Analyze, analysisLimit)
	apiGroup.POST("/transform", AnalysisController.Transform, analysisLimit)

	log.Info("Creating router: OK", nil)

	return router
}
