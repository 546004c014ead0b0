// Package middleware wraps a ports.MemoryStore to mask or encrypt agent
// memories before they reach the backing store.
package middleware

import "github.com/aretw0/autoplan/pkg/ports"

// Middleware allows wrapping a MemoryStore to add behavior.
type Middleware func(ports.MemoryStore) ports.MemoryStore

// Chain applies mws so that the first one sees calls first.
func Chain(store ports.MemoryStore, mws ...Middleware) ports.MemoryStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
