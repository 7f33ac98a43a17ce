package models

import "time"

type ChatMessage struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	IsBot       bool      `json:"is_bot"`
	Timestamp   time.Time `json:"timestamp"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// ChatState is the persisted per-user chat transcript and widget state
type ChatState struct {
	Messages          []ChatMessage `json:"messages"`
	IsOpen            bool          `json:"is_open"`
	IsMinimized       bool          `json:"is_minimized"`
	HasWelcomeMessage bool          `json:"has_welcome_message"`
}

// Clone returns a deep copy safe to mutate independently
func (s ChatState) Clone() ChatState {
	out := s
	out.Messages = make([]ChatMessage, len(s.Messages))
	for i, m := range s.Messages {
		m.Suggestions = append([]string(nil), m.Suggestions...)
		out.Messages[i] = m
	}
	return out
}

type ChatRequest struct {
	UserID  int    `json:"user_id"`
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}
