// Package middleware wraps ports.OverrideStore implementations with extra
// behavior, such as validation and logging.
package middleware

import "github.com/aretw0/animator/pkg/ports"

// Middleware allows wrapping an OverrideStore to add behavior.
type Middleware func(ports.OverrideStore) ports.OverrideStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.OverrideStore, mws ...Middleware) ports.OverrideStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
