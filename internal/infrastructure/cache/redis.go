package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 3 * time.Second
	defaultIOTimeout   = time.Second
)

type Options struct {
	Addr     string
	Password string
	DB       int
	// Zero timeouts fall back to the package defaults.
	DialTimeout time.Duration
	IOTimeout   time.Duration
}

// OpenRedis returns a client that answered PING within the dial timeout.
// The client is closed on failure.
func OpenRedis(ctx context.Context, opt Options) (*redis.Client, error) {
	if opt.Addr == "" {
		return nil, errors.New("redis address is empty")
	}
	if opt.DialTimeout <= 0 {
		opt.DialTimeout = defaultDialTimeout
	}
	if opt.IOTimeout <= 0 {
		opt.IOTimeout = defaultIOTimeout
	}
	r := redis.NewClient(&redis.Options{
		Addr:         opt.Addr,
		Password:     opt.Password,
		DB:           opt.DB,
		DialTimeout:  opt.DialTimeout,
		ReadTimeout:  opt.IOTimeout,
		WriteTimeout: opt.IOTimeout,
	})
	ctx, cancel := context.WithTimeout(ctx, opt.DialTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opt.Addr, err)
	}
	return r, nil
}
