package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// LockRepository guards against concurrent generation runs on the same
// session within this process. Entries expire so a crashed run cannot
// wedge a session forever.
type LockRepository struct {
	cache *cache.Cache
}

func NewLockRepository() *LockRepository {
	c := cache.New(30*time.Minute, 5*time.Minute)
	return &LockRepository{
		cache: c,
	}
}

// Acquire is first-wins: it returns false when another run already
// holds the lock for this key.
func (r *LockRepository) Acquire(key string) bool {
	err := r.cache.Add(key, struct{}{}, cache.DefaultExpiration)
	return err == nil
}

func (r *LockRepository) Release(key string) {
	r.cache.Delete(key)
}

func (r *LockRepository) Held(key string) bool {
	_, found := r.cache.Get(key)
	return found
}
