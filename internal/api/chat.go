package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/certipro/certipro-cli/internal"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// chatStream reads the incrementally delivered chat response body and
// splits it on newline boundaries into JSON records. A record that fails to
// parse is logged and skipped; the stream continues.
type chatStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	err     error
}

func (s *chatStream) Next() (internal.StreamRecord, bool) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		var rec internal.StreamRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			internal.LogWarn("Skipping malformed stream record: %v", err)
			continue
		}
		return rec, true
	}
	s.err = s.scanner.Err()
	return internal.StreamRecord{}, false
}

func (s *chatStream) Err() error {
	return s.err
}

func (s *chatStream) Close() error {
	return s.body.Close()
}

// StreamChat sends one user message and returns the response stream. The
// caller owns the stream and must close it.
func (c *Client) StreamChat(ctx context.Context, message, sessionID string) (internal.ChatStream, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/chat/", nil, chatRequest{
		Message:   message,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.doWith(c.streaming, req)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &chatStream{body: resp.Body, scanner: scanner}, nil
}

type historyResponse struct {
	Messages []internal.Message `json:"messages"`
}

// ChatHistory fetches the authoritative transcript for a session id
func (c *Client) ChatHistory(ctx context.Context, sessionID string) ([]internal.Message, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/chat/"+sessionID+"/history", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp historyResponse
	if err := c.doJSON(req, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}
