package config

import (
	"errors"
	"os"
	"time"

	"converter/packages/common/logger"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var configLogger = logger.NewSource("CONFIG", logger.Default)

const DefaultPath = "converter.config.yaml"

// Wrapper for time.ParseDuration. Panics on error.
// All config durations must be positive.
// Safe to use on validated config, since all durations are checked via "duration" tag.
func parseDuration(raw string) time.Duration {
	v, e := time.ParseDuration(raw)

	if e != nil {
		panic(e)
	}

	return v
}

type appConfig struct {
	ServiceID        string `yaml:"service-id" validate:"required"`
	Environment      string `yaml:"environment" validate:"required"`
	ShowLogs         bool   `yaml:"show-logs" validate:"exists"`
	TraceLogsEnabled bool   `yaml:"trace-logs" validate:"exists"`
	LogDir           string `yaml:"log-dir" validate:"required"`
}

type httpServerConfig struct {
	Domain         string   `yaml:"domain" validate:"required"`
	Port           string   `yaml:"http-port" validate:"required"`
	Secured        bool     `yaml:"http-secured" validate:"exists"`
	TLSCertFile    string   `yaml:"http-tls-cert" validate:"required_if=Secured true"`
	TLSKeyFile     string   `yaml:"http-tls-key" validate:"required_if=Secured true"`
	BodyLimit      string   `yaml:"http-body-limit" validate:"required"`
	CookieDomain   string   `yaml:"cookie-domain"`
	AllowedOrigins []string `yaml:"http-allowed-origins" validate:"required,min=1"`
}

const (
	MemoryRateLimitStore = "memory"
	RedisRateLimitStore  = "redis"
)

type rateLimitConfig struct {
	Store            string `yaml:"rate-limit-store" validate:"required,oneof=memory redis"`
	RawWindow        string `yaml:"rate-limit-window" validate:"required,duration"`
	APIRequests      int    `yaml:"rate-limit-api-requests" validate:"required,min=1"`
	AuthRequests     int    `yaml:"rate-limit-auth-requests" validate:"required,min=1"`
	AnalysisRequests int    `yaml:"rate-limit-analysis-requests" validate:"required,min=1"`
}

func (c *rateLimitConfig) Window() time.Duration {
	return parseDuration(c.RawWindow)
}

type cacheConfig struct {
	RawSocketTimeout    string `yaml:"cache-socket-timeout" validate:"required,duration"`
	RawOperationTimeout string `yaml:"cache-operation-timeout" validate:"required,duration"`
}

func (c *cacheConfig) SocketTimeout() time.Duration {
	return parseDuration(c.RawSocketTimeout)
}

func (c *cacheConfig) OperationTimeout() time.Duration {
	return parseDuration(c.RawOperationTimeout)
}

type debugConfig struct {
	Enabled bool `yaml:"debug-mode" validate:"exists"`
}

type sentryConfig struct {
	TraceSampleRate float64 `yaml:"sentry-trace-sample-rate" validate:"gte=0,lte=1"`
}

type configs struct {
	appConfig        `yaml:",inline"`
	httpServerConfig `yaml:",inline"`
	rateLimitConfig  `yaml:",inline"`
	cacheConfig      `yaml:",inline"`
	debugConfig      `yaml:",inline"`
	sentryConfig     `yaml:",inline"`
}

var App *appConfig
var HTTP *httpServerConfig
var RateLimit *rateLimitConfig
var Cache *cacheConfig
var Debug *debugConfig
var Sentry *sentryConfig

var isInit bool = false

func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterValidation("exists", func(fl validator.FieldLevel) bool {
		return true // Always pass (just ensure that the field exists)
	})
	validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})

	return validate
}

func parse(rawConfig []byte, dest *configs) error {
	if err := yaml.Unmarshal(rawConfig, dest); err != nil {
		return errors.New("failed to parse config: " + err.Error())
	}

	if err := newValidator().Struct(dest); err != nil {
		return errors.New("failed to validate config: " + err.Error())
	}

	return nil
}

func loadConfig(path string, dest *configs) {
	configLogger.Info("Reading config file...", nil)

	rawConfig, err := os.ReadFile(path)
	if err != nil {
		configLogger.Fatal("Failed to read config file", err.Error(), nil)
	}

	configLogger.Info("Reading config file: OK", nil)

	configLogger.Info("Parsing and validating config...", nil)

	if err := parse(rawConfig, dest); err != nil {
		configLogger.Fatal("Failed to load config", err.Error(), nil)
	}

	configLogger.Info("Parsing and validating config: OK", nil)
}

func apply(c *configs) {
	App = &c.appConfig
	HTTP = &c.httpServerConfig
	RateLimit = &c.rateLimitConfig
	Cache = &c.cacheConfig
	Debug = &c.debugConfig
	Sentry = &c.sentryConfig
}

func Init(path string) {
	if isInit {
		configLogger.Fatal("Failed to initialize config", "Config already initialized", nil)
	}

	configLogger.Info("Initializing...", nil)

	configs := new(configs)

	loadConfig(path, configs)
	apply(configs)
	loadSecrets(RateLimit.Store == RedisRateLimitStore)

	configLogger.Info("Initializing: OK", nil)

	isInit = true
}
