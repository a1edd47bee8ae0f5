package inmemory

import (
	"sync"
	"time"

	memberdomain "kinship-app-go/internal/domain/member"
)

// InMemoryMemberCache is a TTL cache in front of member lookups; the auth
// middleware resolves the acting member on every authenticated request.
type InMemoryMemberCache struct {
	mu    sync.RWMutex
	items map[string]memberItem
}

type memberItem struct {
	value     memberdomain.Member
	expiresAt time.Time
}

func NewInMemoryMemberCache() *InMemoryMemberCache {
	return &InMemoryMemberCache{items: make(map[string]memberItem)}
}

func (c *InMemoryMemberCache) Get(code string) (*memberdomain.Member, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[code]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[code]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, code)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *InMemoryMemberCache) Set(code string, m *memberdomain.Member, ttl time.Duration) {
	if m == nil || ttl <= 0 {
		c.Delete(code)
		return
	}

	c.mu.Lock()
	c.items[code] = memberItem{value: *m, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *InMemoryMemberCache) Delete(code string) {
	c.mu.Lock()
	delete(c.items, code)
	c.mu.Unlock()
}
