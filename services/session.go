// ABOUTME: Capacity planning session persistence over a key-value store
// ABOUTME: Decodes persisted JSON strictly; malformed state loads as absent

package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/markalston/capacity-planner/models"
	"github.com/markalston/capacity-planner/storage"
)

// SessionStorageKey is the fixed key the session is stored under
const SessionStorageKey = "capacity-planning-session-v1"

var (
	// ErrMalformedSession means the payload is not a JSON session object
	ErrMalformedSession = errors.New("malformed session")
	// ErrUnsupportedVersion means the payload was written by another schema version
	ErrUnsupportedVersion = errors.New("unsupported session version")
	// ErrInvalidScenario means a scenario failed the structural shape check
	ErrInvalidScenario = errors.New("invalid scenario")
)

// sessionEnvelope defers scenario decoding so each part can be checked separately
type sessionEnvelope struct {
	Version          *int            `json:"version"`
	Baseline         json.RawMessage `json:"baseline"`
	Optimized        json.RawMessage `json:"optimized"`
	ActiveTemplateID string          `json:"activeTemplateId"`
	UpdatedAt        *time.Time      `json:"updatedAt"`
}

// scenarioShape is the minimal structure required before a full decode
type scenarioShape struct {
	ID           models.ScenarioRole `json:"id"`
	Name         string              `json:"name"`
	TemplateID   string              `json:"templateId"`
	ProviderMode models.ProviderMode `json:"providerMode"`
	Workload     json.RawMessage     `json:"workload"`
}

// DecodeSession decodes and validates a persisted session
func DecodeSession(raw []byte) (*models.CapacityPlanningSession, error) {
	var env sessionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if env.Version == nil {
		return nil, fmt.Errorf("%w: missing version", ErrMalformedSession)
	}
	if *env.Version != models.SessionVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *env.Version)
	}

	baseline, err := decodeScenario(env.Baseline, models.RoleBaseline)
	if err != nil {
		return nil, err
	}
	optimized, err := decodeScenario(env.Optimized, models.RoleOptimized)
	if err != nil {
		return nil, err
	}

	session := &models.CapacityPlanningSession{
		Version:          models.SessionVersion,
		Baseline:         baseline,
		Optimized:        optimized,
		ActiveTemplateID: env.ActiveTemplateID,
	}
	if env.UpdatedAt != nil {
		session.UpdatedAt = *env.UpdatedAt
	}
	return session, nil
}

// decodeScenario checks the scenario shape before decoding the full input
func decodeScenario(raw json.RawMessage, role models.ScenarioRole) (models.CapacityScenarioInput, error) {
	var input models.CapacityScenarioInput

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return input, fmt.Errorf("%w: %s missing", ErrInvalidScenario, role)
	}

	var shape scenarioShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return input, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, role, err)
	}
	switch {
	case shape.ID != role:
		return input, fmt.Errorf("%w: %s has id %q", ErrInvalidScenario, role, sanitizeForLog(string(shape.ID)))
	case shape.Name == "":
		return input, fmt.Errorf("%w: %s name is empty", ErrInvalidScenario, role)
	case shape.TemplateID == "":
		return input, fmt.Errorf("%w: %s templateId is empty", ErrInvalidScenario, role)
	case !shape.ProviderMode.Valid():
		return input, fmt.Errorf("%w: %s providerMode %q", ErrInvalidScenario, role, sanitizeForLog(string(shape.ProviderMode)))
	case !isJSONObject(shape.Workload):
		return input, fmt.Errorf("%w: %s workload is not an object", ErrInvalidScenario, role)
	}

	if err := json.Unmarshal(raw, &input); err != nil {
		return input, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, role, err)
	}
	return input, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// ParseCapacityPlanningSession decodes a session, returning nil for any
// malformed or future-versioned payload
func ParseCapacityPlanningSession(raw string) *models.CapacityPlanningSession {
	session, err := DecodeSession([]byte(raw))
	if err != nil {
		slog.Debug("Discarding persisted session", "error", err)
		return nil
	}
	return session
}

// SessionStore saves, loads, and clears the planning session in a Store.
// A nil store behaves as unavailable storage: loads return nil and writes are no-ops.
type SessionStore struct {
	store storage.Store
}

// NewSessionStore creates a session store over the given backend
func NewSessionStore(store storage.Store) *SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) available() bool {
	return s != nil && s.store != nil
}

// Save stamps the session with the schema version and now, then persists it.
// Returns the stored session, or nil when storage is unavailable or the write fails.
func (s *SessionStore) Save(session models.CapacityPlanningSession, now time.Time) *models.CapacityPlanningSession {
	if !s.available() {
		return nil
	}
	if now.IsZero() {
		now = time.Now()
	}

	session.Version = models.SessionVersion
	session.UpdatedAt = now.UTC()

	data, err := json.Marshal(session)
	if err != nil {
		slog.Warn("Failed to encode session", "error", err)
		return nil
	}
	if err := s.store.Set(SessionStorageKey, string(data)); err != nil {
		slog.Warn("Failed to persist session", "error", err)
		return nil
	}

	slog.Debug("Session saved", "template", session.ActiveTemplateID)
	return &session
}

// Load returns the persisted session, or nil when none is stored or it is unreadable
func (s *SessionStore) Load() *models.CapacityPlanningSession {
	if !s.available() {
		return nil
	}

	raw, found, err := s.store.Get(SessionStorageKey)
	if err != nil {
		slog.Warn("Failed to read session", "error", err)
		return nil
	}
	if !found {
		return nil
	}
	return ParseCapacityPlanningSession(raw)
}

// Clear removes the persisted session
func (s *SessionStore) Clear() {
	if !s.available() {
		return
	}
	if err := s.store.Remove(SessionStorageKey); err != nil {
		slog.Warn("Failed to clear session", "error", err)
	}
}
