package redis

import (
	"context"
	"errors"
	"time"

	"converter/packages/common/logger"

	"github.com/redis/go-redis/v9"
)

var cacheLogger = logger.NewSource("CACHE", logger.Default)

type Driver struct {
	client           *redis.Client
	operationTimeout time.Duration
	isConnected      bool
}

func New(opts *redis.Options, operationTimeout time.Duration) *Driver {
	return &Driver{
		client:           redis.NewClient(opts),
		operationTimeout: operationTimeout,
	}
}

func (d *Driver) Connect() error {
	if d.isConnected {
		return errors.New("connection already established")
	}

	cacheLogger.Info("Connecting to cache...", nil)

	ctx, cancel := d.defaultTimeoutContext()
	defer cancel()

	if err := d.client.Ping(ctx).Err(); err != nil {
		cacheLogger.Error("Failed to connect to cache", err.Error(), nil)
		return err
	}

	cacheLogger.Info("Connecting to cache: OK", nil)

	d.isConnected = true

	return nil
}

func (d *Driver) Close() error {
	if !d.isConnected {
		return errors.New("connection not established")
	}

	cacheLogger.Info("Disconnecting from cache...", nil)

	if err := d.client.Close(); err != nil {
		return err
	}

	cacheLogger.Info("Disconnecting from cache: OK", nil)

	d.isConnected = false

	return nil
}

func (d *Driver) defaultTimeoutContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.operationTimeout)
}

// Logs given action and error.
func logError(action string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		cacheLogger.Error("Request failed", "TIMEOUT: "+action, nil)
	} else {
		cacheLogger.Error("Request failed", "Failed to "+action+": "+err.Error(), nil)
	}
	return err
}

// Increments counter stored under the key and returns its new value.
// Counter expires after window elapsed since its first increment.
func (d *Driver) IncrementWindow(key string, window time.Duration) (int64, error) {
	ctx, cancel := d.defaultTimeoutContext()
	defer cancel()

	pipe := d.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.PTTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, logError("increment "+key, err)
	}

	// Negative TTL means key has no expiration yet, it's either just created
	// or previous PEXPIRE failed. In both cases window must be (re)started.
	if ttl.Val() < 0 {
		if err := d.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, logError("set expiration for "+key, err)
		}
	}

	return incr.Val(), nil
}
