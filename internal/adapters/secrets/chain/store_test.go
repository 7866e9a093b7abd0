package chain

import (
	"context"
	"errors"
	"testing"

	envstore "github.com/bnema/boardroom/internal/adapters/secrets/env"
	passstore "github.com/bnema/boardroom/internal/adapters/secrets/pass"
	"github.com/bnema/boardroom/internal/domain"
	portmocks "github.com/bnema/boardroom/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const key = "boardroom://provider/api_key"

func newTestChain(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(Backend{Name: "pass", Store: primary}, Backend{Name: "file", Store: fallback})
	require.NoError(t, err)
	return store, primary, fallback
}

func TestNewStoreRejectsMissingBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore()
	require.Error(t, err)

	_, err = NewStore(Backend{Name: "pass"})
	require.ErrorContains(t, err, "pass")
}

func TestStoreGetUsesFirstBackendThatSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, key).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, key).Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, key).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreLookupNamesTheAnsweringBackend(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, key).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, key).Return("from-file", nil).Once()

	value, backend, err := store.Lookup(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
	assert.Equal(t, "file", backend)
}

func TestStoreGetTreatsUnavailablePassAsNotFound(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, key).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, key).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), key)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsNotFoundWhenNoBackendHasTheSecret(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, key).Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, key).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), key)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsCombinedErrorWhenBackendsFail(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, key).Return("", errors.New("gpg failed")).Once()
	fallback.EXPECT().Get(mock.Anything, key).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), key)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass backend get failed: gpg failed")
	assert.ErrorContains(t, err, "file backend get failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)
	primary.EXPECT().Get(mock.Anything, key).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), key)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutSkipsReadOnlyBackends(t *testing.T) {
	t.Parallel()

	readOnly := portmocks.NewMockSecretStore(t)
	writable := portmocks.NewMockSecretStore(t)
	store, err := NewStore(Backend{Name: "env", Store: readOnly}, Backend{Name: "file", Store: writable})
	require.NoError(t, err)

	readOnly.EXPECT().Put(mock.Anything, key, "secret").Return(envstore.ErrReadOnly).Once()
	writable.EXPECT().Put(mock.Anything, key, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), key, "secret"))
}

func TestStorePutSkipsUnavailablePass(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Put(mock.Anything, key, "secret").Return(passstore.ErrUnavailable).Once()
	fallback.EXPECT().Put(mock.Anything, key, "secret").Return(errors.New("disk full")).Once()

	err := store.Put(context.Background(), key, "secret")
	require.Error(t, err)
	assert.ErrorContains(t, err, "file backend put failed: disk full")
	assert.NotContains(t, err.Error(), "pass backend")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Put(mock.Anything, key, "secret").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, key, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), key, "secret"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newTestChain(t)
	primary.EXPECT().Put(mock.Anything, key, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), key, "secret"))
}

func TestStoreDeleteReachesEveryBackend(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Delete(mock.Anything, key).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, key).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), key))
}

func TestStoreDeleteReportsFailures(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newTestChain(t)
	primary.EXPECT().Delete(mock.Anything, key).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, key).Return(nil).Once()

	err := store.Delete(context.Background(), key)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass backend delete failed")
}
