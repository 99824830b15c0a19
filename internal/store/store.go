// Copyright (c) 2025 NoSQL Cloud
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package store opens and owns the live database handles shared by all
// requests. Both clients are connection pools and safe for concurrent use.
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nguyenduc21766/nosql-cloud/internal/config"
)

// Stores bundles the Mongo and Redis handles for the lifetime of the
// process.
type Stores struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client
}

// Open connects to both stores and verifies each with a ping. On any
// failure it closes whatever was already opened and returns the error.
func Open(ctx context.Context, cfg config.Config) (*Stores, error) {
	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	mongoClient, err := mongo.Connect(dialCtx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(cfg.DialTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := mongoClient.Ping(dialCtx, readpref.Primary()); err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		DialTimeout: cfg.DialTimeout,
	})
	if err := redisClient.Ping(dialCtx).Err(); err != nil {
		_ = redisClient.Close()
		_ = mongoClient.Disconnect(context.Background())
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Stores{
		Mongo: mongoClient,
		DB:    mongoClient.Database(cfg.MongoDB),
		Redis: redisClient,
	}, nil
}

// PingMongo reports whether the Mongo deployment answers.
func (s *Stores) PingMongo(ctx context.Context) error {
	return s.Mongo.Ping(ctx, readpref.Primary())
}

// PingRedis reports whether the Redis server answers.
func (s *Stores) PingRedis(ctx context.Context) error {
	return s.Redis.Ping(ctx).Err()
}

// Close releases both client pools. Safe to call once at shutdown.
func (s *Stores) Close(ctx context.Context) error {
	var first error
	if err := s.Redis.Close(); err != nil {
		first = fmt.Errorf("close redis: %w", err)
	}
	if err := s.Mongo.Disconnect(ctx); err != nil && first == nil {
		first = fmt.Errorf("disconnect mongodb: %w", err)
	}
	return first
}
