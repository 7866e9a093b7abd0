package env

import (
	"context"
	"testing"

	"github.com/bnema/boardroom/internal/adapters/secrets"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(env map[string]string, aliases map[string][]string) *Store {
	store := NewStore(aliases)
	store.lookup = func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}
	return store
}

func TestStoreGetPrefersBoardroomVariable(t *testing.T) {
	t.Parallel()

	store := newTestStore(map[string]string{
		"BOARDROOM_PROVIDER_API_KEY": "sk-boardroom",
		"OPENAI_API_KEY":             "sk-openai",
	}, map[string][]string{secrets.ProviderAPIKey: {"OPENAI_API_KEY"}})

	value, err := store.Get(context.Background(), secrets.ProviderAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-boardroom", value)
}

func TestStoreGetFallsBackToAlias(t *testing.T) {
	t.Parallel()

	store := newTestStore(map[string]string{
		"BOARDROOM_PROVIDER_API_KEY": "  ",
		"OPENAI_API_KEY":             "sk-openai\n",
	}, map[string][]string{secrets.ProviderAPIKey: {"OPENAI_API_KEY"}})

	value, err := store.Get(context.Background(), secrets.ProviderAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "sk-openai", value)
}

func TestStoreGetMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(map[string]string{}, nil)

	_, err := store.Get(context.Background(), secrets.ProviderAPIKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreIsReadOnly(t *testing.T) {
	t.Parallel()

	store := newTestStore(map[string]string{}, nil)

	require.ErrorIs(t, store.Put(context.Background(), secrets.ProviderAPIKey, "sk"), ErrReadOnly)
	require.ErrorIs(t, store.Delete(context.Background(), secrets.ProviderAPIKey), ErrReadOnly)
}
