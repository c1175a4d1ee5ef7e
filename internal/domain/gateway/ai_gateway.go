// Package gateway declares the capability interface to the external AI
// service. The workflow only ever sees this interface; tests inject a
// fake, production wires the Gemini adapter.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jijnash2636/medaiton/internal/domain/entity"
)

// ErrMissingAPIKey is returned when no credential is configured. It is
// fatal for the single call only, never for the process.
var ErrMissingAPIKey = errors.New("ai gateway: API key is not configured")

// TriageRequest carries the patient context for a classification call.
type TriageRequest struct {
	Name       string
	Age        int
	Gender     string
	Department string
	Symptoms   string
	Vitals     *entity.Vitals
	Urgent     bool
}

// NotesRequest carries the consultation context for a SOAP note draft.
type NotesRequest struct {
	Name   string
	Age    int
	Gender string
	Reason string
	Vitals *entity.Vitals
}

// SOAPNotes is the structured result of a notes call.
type SOAPNotes struct {
	Subjective string `json:"subjective" validate:"required"`
	Objective  string `json:"objective" validate:"required"`
	Assessment string `json:"assessment" validate:"required"`
	Plan       string `json:"plan" validate:"required"`
}

// Format concatenates the four sections into the note block stored on
// the appointment.
func (n *SOAPNotes) Format() string {
	return strings.TrimSpace(fmt.Sprintf(
		"### Subjective\n%s\n\n### Objective\n%s\n\n### Assessment\n%s\n\n### Plan\n%s",
		n.Subjective, n.Objective, n.Assessment, n.Plan,
	))
}

// AIGateway is the external collaborator. Both calls are single-attempt
// and bounded by the implementation's timeout; a failure surfaces to the
// caller without touching any entity.
type AIGateway interface {
	SuggestTriage(ctx context.Context, req *TriageRequest) (*entity.TriageSuggestion, error)
	DraftSOAPNotes(ctx context.Context, req *NotesRequest) (*SOAPNotes, error)
}
