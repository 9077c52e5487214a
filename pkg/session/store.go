// Package session persists the client-side session identifier.
//
// The store is the native analog of the browser's per-origin local
// storage: a single identifier, generated lazily on first use, reused
// across restarts, and replaced only when the server supplies a
// different one in a response.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const storeFile = "session"

// Store holds the persisted session identifier.
type Store struct {
	path string
	mu   sync.Mutex
	id   string
}

// NewStore creates a session store rooted at dir. An empty dir defaults
// to ~/.serenechat.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".serenechat")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	return &Store{path: filepath.Join(dir, storeFile)}, nil
}

// Current returns the session identifier, generating and persisting one
// on first use. Once generated the identifier is stable until Rotate or
// Reset.
func (s *Store) Current() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != "" {
		return s.id, nil
	}

	data, err := os.ReadFile(s.path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if err := validateID(id); err == nil {
			s.id = id
			return s.id, nil
		}
		log.Warn().Str("path", s.path).Msg("Stored session id is invalid, regenerating")
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	id := uuid.NewString()
	if err := s.writeLocked(id); err != nil {
		return "", err
	}
	s.id = id

	log.Info().Str("session_id", id).Msg("Session created")
	return s.id, nil
}

// Rotate replaces the stored identifier with a server-supplied one.
// Rotating to the current identifier is a no-op.
func (s *Store) Rotate(id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id == s.id {
		return nil
	}
	if err := s.writeLocked(id); err != nil {
		return err
	}
	s.id = id

	log.Info().Str("session_id", id).Msg("Session rotated")
	return nil
}

// Reset discards the stored identifier; the next Current call generates
// a fresh one.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// writeLocked persists the identifier via a temp file and atomic rename.
func (s *Store) writeLocked(id string) error {
	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(id+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	if strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("session id cannot contain path separators")
	}
	if strings.ContainsAny(id, "\x00\n\r") {
		return fmt.Errorf("session id cannot contain control characters")
	}
	return nil
}
