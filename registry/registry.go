// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry shares Tributary specs between the components of a
// coordinator, keyed by genesis.
package registry

import (
	"fmt"
	"sync"

	"github.com/luxfi/geth/common/lru"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/tributary"
)

// DefaultSize is the number of specs kept when no size is configured
const DefaultSize = 128

// Registry is a bounded cache of specs. Specs are immutable, so a spec handed
// out stays valid after it is evicted or retired.
type Registry struct {
	log   log.Logger
	lock  sync.RWMutex
	specs lru.BasicLRU[ids.ID, *tributary.Spec]
}

// New returns a registry holding at most size specs.
func New(log log.Logger, size int) *Registry {
	if size <= 0 {
		size = DefaultSize
	}
	return &Registry{
		log:   log,
		specs: lru.NewBasicLRU[ids.ID, *tributary.Spec](size),
	}
}

// Add registers spec and returns its genesis.
func (r *Registry) Add(spec *tributary.Spec) ids.ID {
	genesis := spec.Genesis()

	r.lock.Lock()
	evicted := r.specs.Add(genesis, spec)
	r.lock.Unlock()

	r.log.Debug(
		"registered tributary",
		log.Stringer("genesis", genesis),
		log.Stringer("set", spec.Set()),
	)
	if evicted {
		r.log.Debug("evicted least recently used tributary")
	}
	return genesis
}

// Get returns the spec with the given genesis, if registered.
func (r *Registry) Get(genesis ids.ID) (*tributary.Spec, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	// BasicLRU.Get updates recency, so it needs the write lock.
	return r.specs.Get(genesis)
}

// GetOrLoad returns the registered spec for genesis, or loads it with fetch
// and registers it. A fetched spec must derive the requested genesis.
func (r *Registry) GetOrLoad(genesis ids.ID, fetch func(ids.ID) (*tributary.Spec, error)) (*tributary.Spec, error) {
	if spec, ok := r.Get(genesis); ok {
		return spec, nil
	}

	spec, err := fetch(genesis)
	if err != nil {
		r.log.Warn(
			"failed to load tributary",
			log.Stringer("genesis", genesis),
			log.Err(err),
		)
		return nil, fmt.Errorf("failed to load tributary %s: %w", genesis, err)
	}
	if got := spec.Genesis(); got != genesis {
		return nil, fmt.Errorf("%w: requested %s, loaded %s", tributary.ErrGenesisMismatch, genesis, got)
	}

	r.Add(spec)
	return spec, nil
}

// Retire drops the spec with the given genesis, reporting whether it was
// registered.
func (r *Registry) Retire(genesis ids.ID) bool {
	r.lock.Lock()
	removed := r.specs.Remove(genesis)
	r.lock.Unlock()

	if removed {
		r.log.Info(
			"retired tributary",
			log.Stringer("genesis", genesis),
		)
	}
	return removed
}

// Len returns the number of registered specs
func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.specs.Len()
}
