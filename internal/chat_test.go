package internal

import (
	"context"
	"errors"
	"testing"
)

type fakeStream struct {
	records []StreamRecord
	pos     int
	err     error
	closed  bool
}

func (s *fakeStream) Next() (StreamRecord, bool) {
	if s.pos >= len(s.records) {
		return StreamRecord{}, false
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, true
}

func (s *fakeStream) Err() error { return s.err }

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeChatService struct {
	stream     *fakeStream
	streamErr  error
	history    []Message
	historyErr error

	sentMessages []string
	sentSessions []string
	historyCalls int
}

func (f *fakeChatService) StreamChat(ctx context.Context, message, sessionID string) (ChatStream, error) {
	f.sentMessages = append(f.sentMessages, message)
	f.sentSessions = append(f.sentSessions, sessionID)
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return f.stream, nil
}

func (f *fakeChatService) ChatHistory(ctx context.Context, sessionID string) ([]Message, error) {
	f.historyCalls++
	return f.history, f.historyErr
}

func TestSendAccumulatesFragments(t *testing.T) {
	svc := &fakeChatService{stream: &fakeStream{records: []StreamRecord{
		{Response: "Hel"},
		{Response: "lo"},
		{Complete: true, SessionID: "s1"},
	}}}
	cs := NewChatSession(svc, openTestStore(t))

	var updates []string
	err := cs.Send(context.Background(), "Hi", func(content string) {
		updates = append(updates, content)
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	messages := cs.Messages()
	if len(messages) != 2 {
		t.Fatalf("Messages() = %d entries, want user + one assistant", len(messages))
	}
	if messages[0].Role != "user" || messages[0].Content != "Hi" {
		t.Errorf("messages[0] = %+v, want user Hi", messages[0])
	}
	if messages[1].Role != "assistant" || messages[1].Content != "Hello" {
		t.Errorf("messages[1] = %+v, want assistant Hello", messages[1])
	}
	if cs.SessionID() != "s1" {
		t.Errorf("SessionID() = %q, want s1", cs.SessionID())
	}
	if cs.State() != StateIdle {
		t.Errorf("State() after send = %v, want idle", cs.State())
	}

	if len(updates) != 2 || updates[0] != "Hel" || updates[1] != "Hello" {
		t.Errorf("updates = %v, want [Hel Hello]", updates)
	}
	if !svc.stream.closed {
		t.Error("stream should be closed after the turn")
	}
}

func TestSendRejectsEmptyInput(t *testing.T) {
	svc := &fakeChatService{}
	cs := NewChatSession(svc, openTestStore(t))

	for _, input := range []string{"", "   ", "\n\t"} {
		if err := cs.Send(context.Background(), input, nil); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyMessage", input, err)
		}
	}
	if len(svc.sentMessages) != 0 {
		t.Errorf("empty input reached the service: %v", svc.sentMessages)
	}
}

func TestSendTrimsWhitespace(t *testing.T) {
	svc := &fakeChatService{stream: &fakeStream{records: []StreamRecord{
		{Complete: true, SessionID: "s1"},
	}}}
	cs := NewChatSession(svc, openTestStore(t))

	if err := cs.Send(context.Background(), "  question  ", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if svc.sentMessages[0] != "question" {
		t.Errorf("sent message = %q, want trimmed", svc.sentMessages[0])
	}
}

func TestSendCarriesSessionID(t *testing.T) {
	svc := &fakeChatService{stream: &fakeStream{records: []StreamRecord{
		{Response: "ok"},
		{Complete: true, SessionID: "s1"},
	}}}
	cs := NewChatSession(svc, openTestStore(t))

	if err := cs.Send(context.Background(), "first", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if svc.sentSessions[0] != "" {
		t.Errorf("first turn session id = %q, want empty", svc.sentSessions[0])
	}

	svc.stream = &fakeStream{records: []StreamRecord{{Complete: true, SessionID: "s1"}}}
	if err := cs.Send(context.Background(), "second", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if svc.sentSessions[1] != "s1" {
		t.Errorf("second turn session id = %q, want s1", svc.sentSessions[1])
	}
}

func TestSendStreamFailureKeepsUserMessage(t *testing.T) {
	svc := &fakeChatService{streamErr: errors.New("connection refused")}
	cs := NewChatSession(svc, openTestStore(t))

	if err := cs.Send(context.Background(), "Hi", nil); err == nil {
		t.Fatal("Send() with failing stream should return an error")
	}
	// The user message stays in the transcript; the turn simply has no
	// assistant reply.
	messages := cs.Messages()
	if len(messages) != 1 || messages[0].Role != "user" {
		t.Errorf("Messages() = %+v, want only the user message", messages)
	}
	if cs.State() != StateIdle {
		t.Errorf("State() after failure = %v, want idle", cs.State())
	}
}

func TestSessionPersistsAcrossRestarts(t *testing.T) {
	store := openTestStore(t)
	svc := &fakeChatService{stream: &fakeStream{records: []StreamRecord{
		{Response: "Hello"},
		{Complete: true, SessionID: "s1"},
	}}}

	cs := NewChatSession(svc, store)
	if err := cs.Send(context.Background(), "Hi", nil); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	restored := NewChatSession(svc, store)
	if restored.SessionID() != "s1" {
		t.Errorf("restored SessionID() = %q, want s1", restored.SessionID())
	}
	if len(restored.Messages()) != 2 {
		t.Errorf("restored Messages() = %d entries, want 2", len(restored.Messages()))
	}
}

func TestHydrate(t *testing.T) {
	t.Run("replaces local transcript", func(t *testing.T) {
		store := openTestStore(t)
		if err := store.SaveSession(&Session{
			SessionID: "s1",
			Messages:  []Message{{Role: "user", Content: "stale"}},
		}); err != nil {
			t.Fatalf("SaveSession() error = %v", err)
		}

		svc := &fakeChatService{history: []Message{
			{Role: "user", Content: "fresh"},
			{Role: "assistant", Content: "reply"},
		}}
		cs := NewChatSession(svc, store)
		cs.Hydrate(context.Background())

		messages := cs.Messages()
		if len(messages) != 2 || messages[0].Content != "fresh" {
			t.Errorf("Messages() after hydrate = %+v, want server history", messages)
		}
	})

	t.Run("failure keeps local transcript", func(t *testing.T) {
		store := openTestStore(t)
		if err := store.SaveSession(&Session{
			SessionID: "s1",
			Messages:  []Message{{Role: "user", Content: "local"}},
		}); err != nil {
			t.Fatalf("SaveSession() error = %v", err)
		}

		svc := &fakeChatService{historyErr: errors.New("timeout")}
		cs := NewChatSession(svc, store)
		cs.Hydrate(context.Background())

		messages := cs.Messages()
		if len(messages) != 1 || messages[0].Content != "local" {
			t.Errorf("Messages() after failed hydrate = %+v, want local transcript", messages)
		}
	})

	t.Run("no session id skips the fetch", func(t *testing.T) {
		svc := &fakeChatService{}
		cs := NewChatSession(svc, openTestStore(t))
		cs.Hydrate(context.Background())
		if svc.historyCalls != 0 {
			t.Errorf("history calls = %d, want 0 without a session id", svc.historyCalls)
		}
	})
}

func TestHandoff(t *testing.T) {
	t.Run("fires once on an empty transcript", func(t *testing.T) {
		svc := &fakeChatService{stream: &fakeStream{records: []StreamRecord{
			{Response: "Sure"},
			{Complete: true, SessionID: "s1"},
		}}}
		cs := NewChatSession(svc, openTestStore(t))

		if err := cs.Handoff(context.Background(), "Tell me about ISO 9001", nil); err != nil {
			t.Fatalf("Handoff() error = %v", err)
		}
		if len(svc.sentMessages) != 1 {
			t.Fatalf("sent = %d messages, want 1", len(svc.sentMessages))
		}

		// Remount must not duplicate the auto-send
		if err := cs.Handoff(context.Background(), "Tell me about ISO 9001", nil); err != nil {
			t.Fatalf("second Handoff() error = %v", err)
		}
		if len(svc.sentMessages) != 1 {
			t.Errorf("sent = %d messages after repeat handoff, want still 1", len(svc.sentMessages))
		}
	})

	t.Run("ignored when transcript is non-empty", func(t *testing.T) {
		store := openTestStore(t)
		if err := store.SaveSession(&Session{
			SessionID: "s1",
			Messages:  []Message{{Role: "user", Content: "earlier"}},
		}); err != nil {
			t.Fatalf("SaveSession() error = %v", err)
		}

		svc := &fakeChatService{}
		cs := NewChatSession(svc, store)
		if err := cs.Handoff(context.Background(), "new question", nil); err != nil {
			t.Fatalf("Handoff() error = %v", err)
		}
		if len(svc.sentMessages) != 0 {
			t.Errorf("handoff on non-empty transcript sent %v", svc.sentMessages)
		}
	})
}
