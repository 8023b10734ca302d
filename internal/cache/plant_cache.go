package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/01moynul/plantsy-golang/internal/models"
	"github.com/01moynul/plantsy-golang/internal/store"
	"github.com/redis/go-redis/v9"
)

const (
	plantKeyPrefix = "plant:" // plant:{id} -> JSON encoded models.Plant
	versionSuffix  = ":ver"   // plant:{id}:ver -> write counter
	versionTTL     = 24 * time.Hour
)

// CachedPlantStore is a read-through redis cache in front of a PlantStore.
// Only single-plant reads are cached. Writes go to the inner store first, then
// bump the plant's version and drop the cached entry. A fill only lands if the
// version it saw before reading the database is still current, so a reader
// that raced a write cannot put the old row back. Redis failures never fail a
// request.
type CachedPlantStore struct {
	inner  store.PlantStore
	client *redis.Client
	ttl    time.Duration
}

func NewCachedPlantStore(inner store.PlantStore, client *redis.Client, ttl time.Duration) *CachedPlantStore {
	return &CachedPlantStore{inner: inner, client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (c *CachedPlantStore) List(ctx context.Context) ([]models.Plant, error) {
	return c.inner.List(ctx)
}

func (c *CachedPlantStore) Create(ctx context.Context, p *models.Plant) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.fill(ctx, p, c.version(ctx, p.ID))
	return nil
}

func (c *CachedPlantStore) GetByID(ctx context.Context, id int64) (*models.Plant, error) {
	data, err := c.client.Get(ctx, plantKey(id)).Bytes()
	switch {
	case err == nil:
		var p models.Plant
		if jerr := json.Unmarshal(data, &p); jerr == nil {
			return &p, nil
		}
		log.Printf("[warn] cache: dropping undecodable entry %s", plantKey(id))
		c.client.Del(ctx, plantKey(id))
	case !errors.Is(err, redis.Nil):
		log.Printf("[warn] cache: get %s: %v", plantKey(id), err)
	}

	ver := c.version(ctx, id)
	p, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, p, ver)
	return p, nil
}

func (c *CachedPlantStore) UpdateStock(ctx context.Context, id int64, inStock bool) error {
	err := c.inner.UpdateStock(ctx, id, inStock)
	c.invalidate(ctx, id)
	return err
}

func (c *CachedPlantStore) Delete(ctx context.Context, id int64) error {
	err := c.inner.Delete(ctx, id)
	c.invalidate(ctx, id)
	return err
}

// version reads the plant's write counter. A missing key reads as "".
func (c *CachedPlantStore) version(ctx context.Context, id int64) string {
	v, err := c.client.Get(ctx, versionKey(id)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("[warn] cache: get %s: %v", versionKey(id), err)
	}
	return v
}

// fill caches p unless a write bumped its version after ver was read.
func (c *CachedPlantStore) fill(ctx context.Context, p *models.Plant, ver string) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}

	vkey := versionKey(p.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vkey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != ver {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, plantKey(p.ID), data, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		log.Printf("[warn] cache: set %s: %v", plantKey(p.ID), err)
	}
}

// invalidate bumps the version before dropping the entry.
func (c *CachedPlantStore) invalidate(ctx context.Context, id int64) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(id))
		pipe.Expire(ctx, versionKey(id), versionTTL)
		pipe.Del(ctx, plantKey(id))
		return nil
	})
	if err != nil {
		log.Printf("[warn] cache: invalidate %s: %v", plantKey(id), err)
	}
}

func plantKey(id int64) string {
	return plantKeyPrefix + strconv.FormatInt(id, 10)
}

func versionKey(id int64) string {
	return plantKey(id) + versionSuffix
}
