package task

import (
	"encoding/json"
	"fmt"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
	"github.com/hibiken/asynq"
)

const TypePurgeSession = "session:purge"

type PurgeSessionPayload struct {
	SessionID uuid.UUID `json:"session_id"`
}

// NewPurgeSessionTask creates an Asynq task that removes a stale session.
func NewPurgeSessionTask(id uuid.UUID) (*asynq.Task, error) {
	data, err := json.Marshal(PurgeSessionPayload{SessionID: id})
	if err != nil {
		return nil, fmt.Errorf("could not marshal purge-session payload: %w", err)
	}
	return asynq.NewTask(TypePurgeSession, data), nil
}

// ParsePurgeSessionPayload parses the task payload to PurgeSessionPayload.
func ParsePurgeSessionPayload(t *asynq.Task) (PurgeSessionPayload, error) {
	var p PurgeSessionPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return PurgeSessionPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
