package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[Dataset]DatasetDefinition)
	registryMu sync.RWMutex
)

// Register adds a dataset definition to the registry. Panics if the key is
// already registered; definitions are wired once at init time.
func Register(def DatasetDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("dataset already registered: %s", def.Info.Key))
	}
	registry[def.Info.Key] = def
}

// Get returns a dataset definition by key.
func Get(key Dataset) (DatasetDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// All returns every registered definition, sorted by key for consistent
// listing.
func All() []DatasetDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]DatasetDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})
	return result
}

// Clear removes all registered datasets. Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[Dataset]DatasetDefinition)
}
