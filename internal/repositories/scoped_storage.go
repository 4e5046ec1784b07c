package repositories

import "context"

// ScopedStorage namespaces every key of an underlying StorageRepository so
// several shoppers can share one backend.
type ScopedStorage struct {
	base   StorageRepository
	prefix string
}

// NewScopedStorage wraps base so that keys are stored as "shopper:<scope>:<key>".
func NewScopedStorage(base StorageRepository, scope string) *ScopedStorage {
	return &ScopedStorage{
		base:   base,
		prefix: "shopper:" + scope + ":",
	}
}

func (s *ScopedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return s.base.Get(ctx, s.prefix+key)
}

func (s *ScopedStorage) Set(ctx context.Context, key, value string) error {
	return s.base.Set(ctx, s.prefix+key, value)
}

func (s *ScopedStorage) Delete(ctx context.Context, key string) error {
	return s.base.Delete(ctx, s.prefix+key)
}
