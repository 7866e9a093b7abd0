package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/boardroom/internal/adapters/secrets"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
)

var ErrReadOnly = errors.New("environment secret store is read-only")

type lookupFunc func(name string) (string, bool)

// Store resolves secrets from environment variables. Each reference maps to
// BOARDROOM_<PATH>, followed by any aliases registered for it.
type Store struct {
	lookup  lookupFunc
	aliases map[string][]string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(aliases map[string][]string) *Store {
	return &Store{lookup: os.LookupEnv, aliases: aliases}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	for _, name := range s.names(key) {
		if value, ok := s.lookup(name); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), nil
		}
	}

	return "", fmt.Errorf("env secret %q: %w", key, domain.ErrSecretNotFound)
}

func (s *Store) Put(ctx context.Context, key string, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("put %q: %w", key, ErrReadOnly)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("delete %q: %w", key, ErrReadOnly)
}

func (s *Store) names(key string) []string {
	var names []string
	if name := secrets.EnvName(key); name != "" {
		names = append(names, name)
	}
	return append(names, s.aliases[key]...)
}
