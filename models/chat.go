package models

// Conversation turn roles.
const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

// Turn is one prior message in the conversation, role-tagged. Clients send
// recent turns so a session can be rebuilt when the server-side state is gone.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	History   []Turn `json:"history,omitempty"`
}

// ReservationSummary is the public view of a created reservation returned in
// a chat response.
type ReservationSummary struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	ResourceName string `json:"resource_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
}

// AlternativeSlot is a bookable slot proposed when the requested window has
// no free room.
type AlternativeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	RoomName  string `json:"room_name"`
	Date      string `json:"date"`
}

// ChatResponse is what the assistant returns to the frontend.
type ChatResponse struct {
	Success            bool                `json:"success"`
	SessionID          string              `json:"session_id"`
	Intent             string              `json:"intent"`
	Response           string              `json:"response"`
	ReservationCreated bool                `json:"reservation_created"`
	Reservation        *ReservationSummary `json:"reservation,omitempty"`
	MissingFields      []string            `json:"missing_fields,omitempty"`
	Suggestions        []string            `json:"suggestions,omitempty"`
	Alternatives       []AlternativeSlot   `json:"alternatives,omitempty"`
}
