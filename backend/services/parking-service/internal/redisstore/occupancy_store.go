package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OccupiedVehicle mirrors an open session in redis for quick plate lookups
// by gate displays and the ops dashboard.
type OccupiedVehicle struct {
	SessionID string    `json:"session_id"`
	Lot       string    `json:"lot"`
	SpotID    int       `json:"spot_id"`
	Plate     string    `json:"plate"`
	ClientID  string    `json:"client_id"`
	Entry     time.Time `json:"entry"`
}

// Store manages the occupancy cache. The lot history stays authoritative;
// the cache is best-effort.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns a redis-backed occupancy store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(plate string) string {
	return fmt.Sprintf("parking:occupied:%s", plate)
}

// Save caches the vehicle's open session.
func (s *Store) Save(ctx context.Context, v OccupiedVehicle) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(v.Plate), data, s.ttl).Err()
}

// Get returns the cached open session for the plate.
func (s *Store) Get(ctx context.Context, plate string) (*OccupiedVehicle, error) {
	result, err := s.client.Get(ctx, s.key(plate)).Result()
	if err != nil {
		return nil, err
	}
	var v OccupiedVehicle
	if err := json.Unmarshal([]byte(result), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete drops the cache entry after checkout.
func (s *Store) Delete(ctx context.Context, plate string) error {
	return s.client.Del(ctx, s.key(plate)).Err()
}
