// File: services/assistant/interface.go
package assistant

import (
	"context"

	"roomly/models"
)

// Service is the conversational entry point. One call handles one dialog
// turn: it classifies the utterance, advances the session state and either
// answers directly or drives the reservation flow to completion.
type Service interface {
	ProcessMessage(ctx context.Context, userID string, req models.ChatRequest) *models.ChatResponse
}
