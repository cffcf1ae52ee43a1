package service

import (
	"fmt"
	"sync"

	"github.com/olusolaa/hub-reconciler/internal/core/ports"
	"github.com/olusolaa/hub-reconciler/internal/errors"
)

// ComponentRegistry indexes fetchers and their optional schema mappers by
// source label.
type ComponentRegistry struct {
	mu       sync.RWMutex
	fetchers map[string]ports.Fetcher
	mappers  map[string]ports.Mapper
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		fetchers: make(map[string]ports.Fetcher),
		mappers:  make(map[string]ports.Mapper),
	}
}

func (r *ComponentRegistry) RegisterFetcher(fetcher ports.Fetcher) error {
	if fetcher == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil fetcher")
	}
	label := fetcher.Label()
	if label == "" {
		return errors.New(errors.CodeInternal, "fetcher label cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fetchers[label]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("source label '%s' already registered", label))
	}
	r.fetchers[label] = fetcher
	return nil
}

func (r *ComponentRegistry) GetFetcher(label string) (ports.Fetcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fetcher, exists := r.fetchers[label]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("source label '%s' not found", label))
	}
	return fetcher, nil
}

// RegisterMapper attaches a schema mapper to an already registered source.
// Sources without a mapper pass their bodies through unchanged.
func (r *ComponentRegistry) RegisterMapper(label string, mapper ports.Mapper) error {
	if mapper == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil mapper")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fetchers[label]; !exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("cannot attach mapper: source label '%s' not registered", label))
	}
	if _, exists := r.mappers[label]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("mapper for source '%s' already registered", label))
	}
	r.mappers[label] = mapper
	return nil
}

func (r *ComponentRegistry) GetMapper(label string) ports.Mapper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mappers[label]
}

func (r *ComponentRegistry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labels := make([]string, 0, len(r.fetchers))
	for label := range r.fetchers {
		labels = append(labels, label)
	}
	return labels
}
