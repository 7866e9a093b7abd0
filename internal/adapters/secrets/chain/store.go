package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/boardroom/internal/adapters/secrets/env"
	filestore "github.com/bnema/boardroom/internal/adapters/secrets/file"
	passstore "github.com/bnema/boardroom/internal/adapters/secrets/pass"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
)

type Backend struct {
	Name  string
	Store ports.SecretStore
}

// Store resolves secrets through an ordered list of backends. Reads return
// the first hit, writes land in the first backend that accepts them and
// deletes reach every writable backend.
type Store struct {
	backends []Backend
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret chain needs at least one backend")

func NewStore(backends ...Backend) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend.Store == nil {
			return nil, fmt.Errorf("secret backend %d (%s) is nil", i, backend.Name)
		}
	}

	return &Store{backends: backends}, nil
}

type DefaultOptions struct {
	FileRoot   string
	PassPrefix string
	// Aliases lists extra environment variables per secret reference.
	Aliases map[string][]string
}

// NewDefault reads the environment first, then pass, then the secrets file.
// Writes go to pass when it is usable and to the file otherwise.
func NewDefault(opts DefaultOptions) (*Store, error) {
	return NewStore(
		Backend{Name: "env", Store: envstore.NewStore(opts.Aliases)},
		Backend{Name: "pass", Store: passstore.NewStore(passstore.WithPrefix(opts.PassPrefix))},
		Backend{Name: "file", Store: filestore.NewStore(opts.FileRoot)},
	)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, _, err := s.Lookup(ctx, key)
	return value, err
}

// Lookup is Get that also names the backend the value came from.
func (s *Store) Lookup(ctx context.Context, key string) (string, string, error) {
	var errs []error
	notFound := true
	for _, backend := range s.backends {
		value, err := backend.Store.Get(ctx, key)
		if err == nil {
			return value, backend.Name, nil
		}
		if shouldStop(err) {
			return "", "", err
		}
		if !errors.Is(err, domain.ErrSecretNotFound) && !errors.Is(err, passstore.ErrUnavailable) {
			notFound = false
		}
		errs = append(errs, fmt.Errorf("%s backend get failed: %w", backend.Name, err))
	}

	if notFound {
		return "", "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return "", "", errors.Join(errs...)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if shouldStop(err) {
			return err
		}
		if errors.Is(err, envstore.ErrReadOnly) || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		errs = append(errs, fmt.Errorf("%s backend put failed: %w", backend.Name, err))
	}

	if len(errs) == 0 {
		return fmt.Errorf("put %q: no writable secret backend", key)
	}
	return errors.Join(errs...)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Store.Delete(ctx, key)
		if err == nil || errors.Is(err, envstore.ErrReadOnly) || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("%s backend delete failed: %w", backend.Name, err))
	}

	return errors.Join(errs...)
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
