package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/bnema/boardroom/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	panelFileMode   = 0o600
	panelDirMode    = 0o700
	tempFilePattern = ".panel-*.toml.tmp"
)

type PanelRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.PanelRepository = (*PanelRepository)(nil)

func NewPanelRepository(cfg *viper.Viper) (*PanelRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(KeyPanelPath)
	if path == "" {
		return nil, errors.New("panel path is empty")
	}
	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &PanelRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *PanelRepository) Path() string {
	return r.path
}

// Load returns the stored panel, or the default six-advisor panel when no
// panel file exists yet. Entries that reference a built-in persona by id
// inherit every field they leave blank, so a panel file may be as short as
// a list of persona ids.
func (r *PanelRepository) Load(ctx context.Context) ([]domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, found, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.DefaultPanel(), nil
	}

	participants := make([]domain.Participant, 0, len(file.Participants))
	for _, entry := range file.Participants {
		participants = append(participants, fromSchema(entry))
	}
	if _, err := domain.NewRegistry(participants); err != nil {
		return nil, fmt.Errorf("panel file %s: %w", r.path, err)
	}

	return participants, nil
}

func (r *PanelRepository) Save(ctx context.Context, participants []domain.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := domain.NewRegistry(participants); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := panelSchema{Participants: make([]participantSchema, 0, len(participants))}
	for _, participant := range participants {
		file.Participants = append(file.Participants, toSchema(participant))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *PanelRepository) readSchema() (panelSchema, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return panelSchema{}, false, nil
		}
		return panelSchema{}, false, fmt.Errorf("read panel file: %w", err)
	}

	var file panelSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return panelSchema{}, false, fmt.Errorf("decode panel file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return panelSchema{}, false, err
	}
	file.applyDefaults()

	return file, true, nil
}

func (r *PanelRepository) writeSchema(file panelSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode panel file: %w", err)
	}

	return writeFileAtomic(r.path, data)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), panelDirMode); err != nil {
		return fmt.Errorf("create panel directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp panel file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp panel file: %w", err)
	}
	if err := tempFile.Chmod(panelFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp panel file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp panel file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace panel file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(participant domain.Participant) participantSchema {
	return participantSchema{
		Name:      string(participant.Name),
		Specialty: participant.Specialty,
		Persona: personaSchema{
			ID:        string(participant.Persona.ID),
			Role:      participant.Persona.Role,
			Backstory: participant.Persona.Backstory,
			Goal:      participant.Persona.Goal,
		},
	}
}

func fromSchema(entry participantSchema) domain.Participant {
	participant := domain.Participant{
		Name:      domain.ParticipantName(entry.Name),
		Specialty: entry.Specialty,
		Persona: domain.Persona{
			ID:        domain.PersonaID(entry.Persona.ID),
			Role:      entry.Persona.Role,
			Backstory: entry.Persona.Backstory,
			Goal:      entry.Persona.Goal,
		},
	}

	base, ok := domain.DefaultParticipant(participant.Persona.ID)
	if !ok {
		return participant
	}
	participant.Name = firstNonEmpty(participant.Name, base.Name)
	participant.Specialty = firstNonEmpty(participant.Specialty, base.Specialty)
	participant.Persona.Role = firstNonEmpty(participant.Persona.Role, base.Persona.Role)
	participant.Persona.Backstory = firstNonEmpty(participant.Persona.Backstory, base.Persona.Backstory)
	participant.Persona.Goal = firstNonEmpty(participant.Persona.Goal, base.Persona.Goal)
	return participant
}

func firstNonEmpty[T ~string](value, fallback T) T {
	if strings.TrimSpace(string(value)) == "" {
		return fallback
	}
	return value
}
