package member

import "time"

// Cache fronts GetByCode lookups; the auth middleware resolves the acting
// member on every request.
type Cache interface {
	Get(code string) (*Member, bool)
	Set(code string, m *Member, ttl time.Duration)
	Delete(code string)
}

type noopCache struct{}

func (noopCache) Get(string) (*Member, bool)         { return nil, false }
func (noopCache) Set(string, *Member, time.Duration) {}
func (noopCache) Delete(string)                      {}
