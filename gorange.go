package main

import (
	"context"
	"flag"

	"gorange/config"
	"gorange/store"
	"gorange/trees/segment"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var configPath = flag.String("config", "", "path to a yaml config, defaults are used when empty")

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(context.Background(), logger); err != nil {
		logger.Fatal("gorange stopped", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	cache := store.NewCache(client, cfg.Redis.TTL)
	if err := cache.Ping(ctx); err != nil {
		return err
	}

	resolver, err := store.Open(ctx, cfg.MySQL.Store(), cache)
	if err != nil {
		return err
	}
	defer resolver.Close()

	segmentTree, err := segment.NewSegmentTree(cfg.Segment.Span())
	if err != nil {
		return err
	}
	segmentTree.SetResolver(resolver)
	if err := segmentTree.BuildSegmentTree(); err != nil {
		return err
	}

	logger.Info("serving segment tree",
		zap.String("addr", cfg.HTTP.Addr),
		zap.Stringer("span", segmentTree.Span()),
		zap.String("table", cfg.MySQL.Table),
	)

	ginEngine := newRouter(segmentTree, logger)
	return errors.Wrap(ginEngine.Run(cfg.HTTP.Addr), "http server")
}
