package internal

import (
	"context"
	"errors"
	"strings"
)

// Chat turn states. Turns never interleave: a send while a stream is active
// is rejected rather than queued.
type ChatState int

const (
	StateIdle ChatState = iota
	StateSending
	StateStreaming
)

// StreamRecord is one newline-delimited JSON object from the chat response
// body: either a partial content fragment or the completion marker carrying
// the final session id.
type StreamRecord struct {
	Response  string `json:"response,omitempty"`
	Complete  bool   `json:"complete,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatStream yields stream records in arrival order
type ChatStream interface {
	// Next returns the next record; ok is false when the stream ends.
	Next() (rec StreamRecord, ok bool)
	// Err returns the transport error that terminated the stream, if any
	Err() error
	Close() error
}

// ChatService is the backend surface of the chat client.
// Implemented by the API client.
type ChatService interface {
	StreamChat(ctx context.Context, message, sessionID string) (ChatStream, error)
	ChatHistory(ctx context.Context, sessionID string) ([]Message, error)
}

// ErrEmptyMessage is returned for empty or whitespace-only input
var ErrEmptyMessage = errors.New("message is empty")

// ErrStreamBusy is returned when a send is attempted while streaming
var ErrStreamBusy = errors.New("a response is still streaming")

// ChatSession drives one chat conversation: it owns the transcript, applies
// streamed records, and persists state after every change.
type ChatSession struct {
	svc     ChatService
	store   *Store
	state   ChatState
	session Session

	handoffDone bool
}

// NewChatSession restores the persisted session, if any, and returns a chat
// session ready to send. A corrupt stored blob is discarded, not fatal.
func NewChatSession(svc ChatService, store *Store) *ChatSession {
	cs := &ChatSession{svc: svc, store: store}

	saved, err := store.LoadSession()
	if err != nil {
		LogWarn("Failed to restore chat session: %v", err)
	} else if saved != nil {
		cs.session = *saved
	}
	return cs
}

// State returns the current turn state
func (cs *ChatSession) State() ChatState {
	return cs.state
}

// SessionID returns the server-issued session id, or "" before the first
// completed turn.
func (cs *ChatSession) SessionID() string {
	return cs.session.SessionID
}

// Messages returns the transcript
func (cs *ChatSession) Messages() []Message {
	return cs.session.Messages
}

// Hydrate replaces the local transcript with the authoritative server
// history for the current session id. One shot; failure is silently ignored
// and local state stands.
func (cs *ChatSession) Hydrate(ctx context.Context) {
	if cs.session.SessionID == "" {
		return
	}

	messages, err := cs.svc.ChatHistory(ctx, cs.session.SessionID)
	if err != nil {
		LogDebug("History fetch failed, keeping local transcript: %v", err)
		return
	}
	cs.session.Messages = messages
	cs.persist()
}

// Send submits one user message and consumes the streamed response. The
// user message is appended optimistically before the request goes out.
// onUpdate is invoked with the accumulated assistant content after each
// applied fragment; it may be nil.
func (cs *ChatSession) Send(ctx context.Context, text string, onUpdate func(content string)) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}
	if cs.state != StateIdle {
		return ErrStreamBusy
	}

	cs.session.Messages = append(cs.session.Messages, Message{Role: "user", Content: trimmed})
	cs.persist()
	cs.state = StateSending

	stream, err := cs.svc.StreamChat(ctx, trimmed, cs.session.SessionID)
	if err != nil {
		cs.state = StateIdle
		return err
	}
	defer stream.Close()

	cs.state = StateStreaming
	var assistant strings.Builder
	turnStarted := false

	for {
		rec, ok := stream.Next()
		if !ok {
			break
		}
		if rec.Complete {
			cs.session.SessionID = rec.SessionID
			cs.persist()
			break
		}
		if rec.Response == "" {
			continue
		}

		assistant.WriteString(rec.Response)
		cs.applyAssistant(assistant.String(), turnStarted)
		turnStarted = true
		cs.persist()
		if onUpdate != nil {
			onUpdate(assistant.String())
		}
	}

	cs.state = StateIdle
	if err := stream.Err(); err != nil {
		return err
	}
	return nil
}

// applyAssistant replaces the in-progress trailing assistant message, or
// appends a fresh one at the start of the turn.
func (cs *ChatSession) applyAssistant(content string, turnStarted bool) {
	n := len(cs.session.Messages)
	if turnStarted && n > 0 && cs.session.Messages[n-1].Role == "assistant" {
		cs.session.Messages[n-1].Content = content
		return
	}
	cs.session.Messages = append(cs.session.Messages, Message{Role: "assistant", Content: content})
}

// Handoff sends an inbound message carried over from another view, such as
// "Tell me about ISO 9001" from the standards page. It fires at most once
// per session object and only when the transcript is empty, so a remount
// never duplicates the auto-send.
func (cs *ChatSession) Handoff(ctx context.Context, initial string, onUpdate func(content string)) error {
	if cs.handoffDone || len(cs.session.Messages) > 0 {
		return nil
	}
	cs.handoffDone = true
	return cs.Send(ctx, initial, onUpdate)
}

// persist saves the session blob after every transcript or id change
func (cs *ChatSession) persist() {
	if cs.store == nil {
		return
	}
	if len(cs.session.Messages) == 0 && cs.session.SessionID == "" {
		return
	}
	if err := cs.store.SaveSession(&cs.session); err != nil {
		LogWarn("Failed to persist chat session: %v", err)
	}
}
