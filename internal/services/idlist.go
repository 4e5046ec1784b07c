package services

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"sync"

	"techmart/internal/repositories"

	"go.uber.org/zap"
)

// readIDs loads a JSON array of product ids. A missing key, a storage
// failure or malformed content all yield an empty list.
func readIDs(ctx context.Context, storage repositories.StorageRepository, key string) []string {
	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		zap.L().Warn("Failed to read shopper list, using empty list", zap.String("key", key), zap.Error(err))
		return []string{}
	}
	if !ok || raw == "" {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		zap.L().Warn("Malformed shopper list, using empty list", zap.String("key", key), zap.Error(err))
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

// writeIDs stores ids as a JSON array, or removes the key once the list is
// empty. Failures are logged, not returned.
func writeIDs(ctx context.Context, storage repositories.StorageRepository, key string, ids []string) {
	if len(ids) == 0 {
		if err := storage.Delete(ctx, key); err != nil {
			zap.L().Warn("Failed to clear shopper list", zap.String("key", key), zap.Error(err))
		}
		return
	}
	body, err := json.Marshal(ids)
	if err != nil {
		zap.L().Warn("Failed to encode shopper list", zap.String("key", key), zap.Error(err))
		return
	}
	if err := storage.Set(ctx, key, string(body)); err != nil {
		zap.L().Warn("Failed to write shopper list", zap.String("key", key), zap.Error(err))
	}
}

// listLocks serializes read-modify-write cycles on shopper lists within one
// process. Keys hash onto a fixed set of mutexes.
type listLocks struct {
	stripes [64]sync.Mutex
}

func (l *listLocks) lock(shopper, key string) func() {
	h := fnv.New32a()
	h.Write([]byte(shopper))
	h.Write([]byte{0})
	h.Write([]byte(key))
	mu := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	mu.Lock()
	return mu.Unlock
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func withoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
