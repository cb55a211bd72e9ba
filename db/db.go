package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// Options tunes the connection pool and the startup ping.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
	PingAttempts    int
	RetryDelay      time.Duration
}

func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
		PingAttempts:    5,
		RetryDelay:      2 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = def.MaxOpenConns
	}
	if o.MaxIdleConns <= 0 || o.MaxIdleConns > o.MaxOpenConns {
		o.MaxIdleConns = o.MaxOpenConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = def.ConnMaxLifetime
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = def.PingTimeout
	}
	if o.PingAttempts <= 0 {
		o.PingAttempts = 1
	}
	if o.RetryDelay < 0 {
		o.RetryDelay = 0
	}
	return o
}

// Connect opens the arena database and pings it until it answers or
// opts.PingAttempts run out.
func Connect(ctx context.Context, dsn string, opts Options, logger *slog.Logger) (*sql.DB, error) {
	opts = opts.withDefaults()

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}
	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(opts.ConnMaxLifetime)

	attempt := 1
	for ; ; attempt++ {
		if err = ping(ctx, conn, opts.PingTimeout); err == nil {
			logger.InfoContext(ctx, "database connection established", slog.Int("attempt", attempt))
			return conn, nil
		}
		if attempt >= opts.PingAttempts || ctx.Err() != nil {
			break
		}
		logger.WarnContext(ctx, "database not ready",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", opts.RetryDelay),
			slog.Any("error", err))

		timer := time.NewTimer(opts.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			err = ctx.Err()
		case <-timer.C:
		}
		if ctx.Err() != nil {
			break
		}
	}

	if closeErr := conn.Close(); closeErr != nil {
		logger.ErrorContext(ctx, "failed to close database handle", slog.Any("error", closeErr))
	}
	return nil, fmt.Errorf("database unreachable after %d attempt(s): %w", attempt, err)
}

func ping(ctx context.Context, conn *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return conn.PingContext(ctx)
}
