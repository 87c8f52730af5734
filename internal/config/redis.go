package config

// This file defines a Redis client constructor for the application.  Redis
// only backs the public blog response cache.  The client parameters are
// loaded from environment variables.  If the server cannot be reached during
// startup the function returns nil and callers run without the cache.

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// RedisConfig lists the supported connection variables.  REDIS_HOST and
// REDIS_PORT take precedence over the REDIS_ADDR shorthand when both are set.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT"`
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
}

// Address resolves the host:port the client dials.
func (r RedisConfig) Address() string {
	if r.Host != "" && r.Port != "" {
		return r.Host + ":" + r.Port
	}
	return r.Addr
}

// NewRedisClient instantiates a Redis client using environment variables.
// The returned client is nil, with a non-nil error, if the server does not
// answer a ping within two seconds.
func NewRedisClient() (*redis.Client, error) {
	var rc RedisConfig
	if err := env.Parse(&rc); err != nil {
		return nil, fmt.Errorf("parse redis env: %w", err)
	}
	var tlsConf *tls.Config
	if rc.TLS {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      rc.Address(),
		Password:  rc.Password,
		DB:        rc.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", rc.Address(), err)
	}
	return client, nil
}
