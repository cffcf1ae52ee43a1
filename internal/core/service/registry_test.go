package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/hub-reconciler/internal/core/ports/mocks"
)

func TestComponentRegistry_Fetchers(t *testing.T) {
	registry := NewComponentRegistry()

	fetcher := mocks.NewFetcher(t)
	fetcher.On("Label").Return("cloud")

	require.NoError(t, registry.RegisterFetcher(fetcher))

	t.Run("lookup", func(t *testing.T) {
		got, err := registry.GetFetcher("cloud")
		require.NoError(t, err)
		assert.Same(t, fetcher, got)
	})

	t.Run("unknown label", func(t *testing.T) {
		_, err := registry.GetFetcher("ghost")
		require.Error(t, err)
	})

	t.Run("duplicate label", func(t *testing.T) {
		dup := mocks.NewFetcher(t)
		dup.On("Label").Return("cloud")
		require.Error(t, registry.RegisterFetcher(dup))
	})

	t.Run("nil fetcher", func(t *testing.T) {
		require.Error(t, registry.RegisterFetcher(nil))
	})

	t.Run("empty label", func(t *testing.T) {
		unnamed := mocks.NewFetcher(t)
		unnamed.On("Label").Return("")
		require.Error(t, registry.RegisterFetcher(unnamed))
	})

	assert.Equal(t, []string{"cloud"}, registry.Labels())
}

func TestComponentRegistry_Mappers(t *testing.T) {
	registry := NewComponentRegistry()

	fetcher := mocks.NewFetcher(t)
	fetcher.On("Label").Return("local")
	require.NoError(t, registry.RegisterFetcher(fetcher))

	mapper := mocks.NewMapper(t)

	t.Run("requires a registered source", func(t *testing.T) {
		require.Error(t, registry.RegisterMapper("ghost", mapper))
	})

	t.Run("attach and lookup", func(t *testing.T) {
		require.NoError(t, registry.RegisterMapper("local", mapper))
		assert.NotNil(t, registry.GetMapper("local"))
	})

	t.Run("duplicate mapper", func(t *testing.T) {
		require.Error(t, registry.RegisterMapper("local", mapper))
	})

	t.Run("sources without a mapper return nil", func(t *testing.T) {
		assert.Nil(t, registry.GetMapper("cloud"))
	})
}
