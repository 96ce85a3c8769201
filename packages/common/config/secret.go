package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type secrets struct {
	CacheURI      string `validate:"required_with=CachePassword"`
	CachePassword string
	CacheDB       int `validate:"gte=0"`

	// Sentry is disabled if DSN is empty
	SentryDSN string
}

var Secret secrets

func getEnv(key string) string {
	env, _ := os.LookupEnv(key)

	configLogger.Trace("Loaded: "+key, nil)

	return env
}

func readSecrets(cacheRequired bool) (secrets, error) {
	var s secrets

	if cacheRequired {
		for _, variable := range []string{"CACHE_URI", "CACHE_DB"} {
			if _, exists := os.LookupEnv(variable); !exists {
				return s, errors.New("missing required env variable: " + variable)
			}
		}
	}

	if raw := getEnv("CACHE_DB"); raw != "" {
		cacheDB, err := strconv.Atoi(raw)
		if err != nil {
			return s, errors.New("invalid CACHE_DB env variable: " + err.Error())
		}
		s.CacheDB = cacheDB
	}

	s.CacheURI = getEnv("CACHE_URI")
	s.CachePassword = getEnv("CACHE_PASSWORD")
	s.SentryDSN = getEnv("SENTRY_DSN")

	if err := newValidator().Struct(s); err != nil {
		return s, errors.New("secrets validation failed: " + err.Error())
	}

	return s, nil
}

func loadSecrets(cacheRequired bool) {
	configLogger.Info("Loading environment variables...", nil)

	// .env is optional, variables may come from the process environment
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			configLogger.Fatal("Failed to load .env file", err.Error(), nil)
		}
		configLogger.Info(".env file not found, using process environment", nil)
	}

	s, err := readSecrets(cacheRequired)
	if err != nil {
		configLogger.Fatal("Failed to load environment variables", err.Error(), nil)
	}

	Secret = s

	configLogger.Info("Loading environment variables: OK", nil)
}
