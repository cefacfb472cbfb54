package cache

import (
	"context"
	"sync"
	"time"
)

// TTLs des différentes familles de clés. Les facettes et le compte total
// sont scopés par handle de collection (pas par filtre/tri) : ils peuvent
// être légèrement périmés par rapport aux résultats filtrés, c'est assumé.
const (
	FiltersTTL         = 10 * time.Minute
	CollectionCountTTL = 10 * time.Minute
	ReviewsTTL         = 5 * time.Minute
)

// Préfixes de clés, même convention que "refresh:" / "cart:" ailleurs.
func FiltersKey(handle string) string         { return "filters:" + handle }
func CollectionCountKey(handle string) string { return "collection-count:" + handle }
func ReviewsKey(productID string) string      { return "reviews:" + productID }

// Store est le cache éphémère injecté dans les services : map en mémoire
// par défaut, Redis quand plusieurs instances doivent partager le cache.
// Pas de single-flight : deux requêtes concurrentes sur un miss font deux
// appels amont, sans corruption (chaque Set remplace simplement la clé).
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type memoryEntry struct {
	value  string
	expiry time.Time
}

// MemoryStore est le backend par défaut : map protégée par RWMutex,
// expiration absolue vérifiée à la lecture + suppression programmée à
// l'échéance du TTL (best effort, borne la mémoire).
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiry) {
		return "", false
	}
	return entry.value, true
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) {
	expiry := time.Now().Add(ttl)

	s.mu.Lock()
	s.entries[key] = memoryEntry{value: value, expiry: expiry}
	s.mu.Unlock()

	// Suppression différée. Si la clé a été réécrite entre-temps, on ne
	// supprime que si elle est réellement expirée.
	time.AfterFunc(ttl, func() {
		s.mu.Lock()
		if e, ok := s.entries[key]; ok && !time.Now().Before(e.expiry) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
	})
}

func (s *MemoryStore) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}
