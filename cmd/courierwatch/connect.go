package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/caffeinepub/food-order-delivery-platform/internal/client/gateway"
	"github.com/caffeinepub/food-order-delivery-platform/internal/client/querycache"
	"github.com/caffeinepub/food-order-delivery-platform/internal/client/session"
	"github.com/caffeinepub/food-order-delivery-platform/internal/client/sessionstore"
	"github.com/caffeinepub/food-order-delivery-platform/internal/client/storefront"
	"github.com/caffeinepub/food-order-delivery-platform/internal/logger"
)

const (
	sessionPrefix = "courierwatch:"
	sessionTTL    = 12 * time.Hour
)

// connector builds a storefront client for one command invocation. The
// returned func releases everything the client holds.
type connector func(c *cli.Context) (*storefront.Client, func(), error)

func connectBackend(c *cli.Context) (*storefront.Client, func(), error) {
	ctx := c.Context
	log := logger.NewWithWriter(os.Stderr, c.String("log-level"))

	storage, closeStorage, err := openSessionStore(ctx, c.String("redis"), log)
	if err != nil {
		return nil, nil, err
	}

	sess := session.New(ctx, storage, log)
	gw, err := gateway.NewHTTPClient(c.String("backend"), sess, log)
	if err != nil {
		closeStorage()
		return nil, nil, err
	}

	cache := querycache.New(ctx, log)
	client := storefront.New(gw, cache, sess, log, storefront.WithPolicies(policies(c.Duration("interval"))))
	return client, func() {
		cache.Close()
		closeStorage()
	}, nil
}

// openSessionStore keeps courier credentials in redis when an address is
// given so they survive between invocations.
func openSessionStore(ctx context.Context, addr string, log *slog.Logger) (sessionstore.Storage, func(), error) {
	if addr == "" {
		log.Debug("using in-memory session storage")
		return sessionstore.NewMemory(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, cli.Exit("redis unavailable: "+err.Error(), 1)
	}
	return sessionstore.NewRedis(rdb, sessionPrefix, sessionTTL), func() { _ = rdb.Close() }, nil
}

func policies(interval time.Duration) storefront.Policies {
	p := storefront.DefaultPolicies()
	if interval > 0 {
		p.OrderList.RefetchInterval = interval
	}
	return p
}
