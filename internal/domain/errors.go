package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProvider        = errors.New("judgment provider failed")
	ErrPersistence     = errors.New("history persistence failed")
	ErrConfiguration   = errors.New("invalid configuration")
	ErrSessionNotFound = errors.New("session not found")
	ErrSecretNotFound  = errors.New("secret not found")
)

// ProviderError reports a failed judgment request. It aborts the phase and
// the run.
type ProviderError struct {
	Participant ParticipantName
	Phase       Phase
	Err         error
}

func (e *ProviderError) Error() string {
	if e.Participant == "" {
		return fmt.Sprintf("%s phase: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s phase: participant %q: %v", e.Phase, e.Participant, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// PersistenceError reports a failed history write. The deliberation keeps
// going after one.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
