package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implémente Store sur Redis, pour les déploiements multi-
// instances qui partagent le cache de facettes/comptes. Les erreurs Redis
// dégradent en miss : le cache reste best effort.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore ouvre la connexion et la teste tout de suite.
func NewRedisStore(host, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         host,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("impossible de se connecter à Redis: %v", err)
	}

	log.Println("✅ Redis connecté avec succès")
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ Erreur lecture Redis %s: %v", key, err)
		}
		return "", false
	}
	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("⚠️ Erreur écriture Redis %s: %v", key, err)
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Printf("⚠️ Erreur suppression Redis %s: %v", key, err)
	}
}

// Close ferme la connexion Redis.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
