package entity

// Message is one stored chat turn. Immutable once created; owned by the
// session store for the duration of its TTL.
type Message struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}
