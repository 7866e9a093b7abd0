package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/boardroom/internal/adapters/secrets"
	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	"github.com/pelletier/go-toml/v2"
)

const (
	FileName = "secrets.toml"

	schemaVersion  = 1
	storeDirMode   = 0o700
	secretFileMode = 0o600
)

type secretsFile struct {
	Version int                    `toml:"version"`
	Secrets map[string]secretEntry `toml:"secrets"`
}

type secretEntry struct {
	Value     string `toml:"value"`
	UpdatedAt string `toml:"updated_at"`
}

// Store keeps every secret in one owner-only TOML file below root. A file
// that other users can read is refused rather than used.
type Store struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{
		path: filepath.Join(filepath.Clean(root), FileName),
		now:  time.Now,
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := entryName(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Secrets[name] = secretEntry{Value: value, UpdatedAt: s.now().UTC().Format(time.RFC3339)}

	return s.save(doc)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := entryName(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", err
	}
	entry, ok := doc.Secrets[name]
	if !ok || entry.Value == "" {
		return "", fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return entry.Value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := entryName(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc.Secrets[name]; !ok {
		return nil
	}
	delete(doc.Secrets, name)

	if len(doc.Secrets) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove secrets file: %w", err)
		}
		return nil
	}
	return s.save(doc)
}

func (s *Store) load() (secretsFile, error) {
	doc := secretsFile{Version: schemaVersion, Secrets: map[string]secretEntry{}}

	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("stat secrets file: %w", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		return doc, fmt.Errorf("secrets file %s has mode %#o, want %#o", s.path, perm, secretFileMode)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc, fmt.Errorf("read secrets file: %w", err)
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode secrets file %s: %w", s.path, err)
	}
	if doc.Version > schemaVersion {
		return doc, fmt.Errorf("secrets file %s: unsupported schema version %d", s.path, doc.Version)
	}
	if doc.Secrets == nil {
		doc.Secrets = map[string]secretEntry{}
	}

	return doc, nil
}

func (s *Store) save(doc secretsFile) error {
	doc.Version = schemaVersion
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode secrets file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, storeDirMode); err != nil {
		return fmt.Errorf("create secret directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+".*")
	if err != nil {
		return fmt.Errorf("create temp secrets file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(secretFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp secrets file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp secrets file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp secrets file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp secrets file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace secrets file: %w", err)
	}

	return nil
}

// entryName turns a reference into the table key, rejecting references
// that do not look like relative slash paths.
func entryName(key string) (string, error) {
	relative := secrets.Path(key)
	if relative == "" {
		return "", errors.New("secret key is empty")
	}
	for _, segment := range strings.Split(relative, "/") {
		switch segment {
		case "", ".", "..":
			return "", fmt.Errorf("invalid secret key %q", key)
		}
	}
	return relative, nil
}
