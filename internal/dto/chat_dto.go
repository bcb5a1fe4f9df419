package dto

// ChatRequest is the body of POST /api/chat/v1. The session id travels in
// the X-Session-Id header, not the body.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// ChatEvent is one server-sent frame of a streamed chat response.
// Type is one of constant.ChatEventMessage / ChatEventFollowUp /
// ChatEventDone / ChatEventError. FollowUps is set only on follow_up
// frames; the done frame carries the "[DONE]" sentinel in Content.
type ChatEvent struct {
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	FollowUps []string `json:"follow_ups,omitempty"`
}

type WelcomeResponse struct {
	Content   string `json:"content"`
	SessionId string `json:"session_id"`
}
