package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/insightdeck/insightdeck/internal/models"
)

// messageReply wraps a JSON payload into a minimal messages-API response
// whose single text block carries the payload in a ```json fence.
func messageReply(payload string) string {
	b, _ := json.Marshal(map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-sonnet-4-6",
		"content":     []map[string]string{{"type": "text", "text": "```json\n" + payload + "\n```"}},
		"stop_reason": "end_turn",
		"usage":       map[string]int{"input_tokens": 1, "output_tokens": 1},
	})
	return string(b)
}

// insightServer records the user prompt of each request and answers with a
// fixed, parseable readout.
func insightServer(t *testing.T, prompt *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading request body: %v", err)
		}
		var req struct {
			Messages []struct {
				Content []struct {
					Text string `json:"text"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if len(req.Messages) > 0 && len(req.Messages[0].Content) > 0 {
			*prompt = req.Messages[0].Content[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, messageReply(`{"summary":"ok","trends":[],"anomalies":[],"suggestions":[]}`))
	}))
}

func TestSynthesizeTruncatesSampleInOrder(t *testing.T) {
	var prompt string
	srv := insightServer(t, &prompt)
	defer srv.Close()

	a := NewAnthropic("test-key", "", srv.URL, 15)

	rows := make([]models.ResultRow, 0, 40)
	for i := 0; i < 40; i++ {
		rows = append(rows, models.ResultRow{"ACCOUNT": fmt.Sprintf("CUST-%02d", i)})
	}

	insight, err := a.Synthesize(context.Background(), rows)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if insight.Summary != "ok" {
		t.Errorf("Summary = %q, want %q", insight.Summary, "ok")
	}

	if !strings.Contains(prompt, "sample of 15") {
		t.Errorf("prompt header does not state the sample size: %q", prompt)
	}
	for i := 0; i < 15; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("CUST-%02d", i)) {
			t.Errorf("row %d missing from prompt", i)
		}
	}
	if strings.Contains(prompt, "CUST-15") {
		t.Errorf("prompt carries rows past the sample size")
	}
	if strings.Index(prompt, "CUST-00") > strings.Index(prompt, "CUST-14") {
		t.Errorf("sample rows are not in their original order")
	}
}

func TestSynthesizeKeepsShortResultsWhole(t *testing.T) {
	var prompt string
	srv := insightServer(t, &prompt)
	defer srv.Close()

	a := NewAnthropic("test-key", "", srv.URL, 15)

	rows := []models.ResultRow{
		{"ACCOUNT": "CUST-00"},
		{"ACCOUNT": "CUST-01"},
		{"ACCOUNT": "CUST-02"},
	}
	if _, err := a.Synthesize(context.Background(), rows); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !strings.Contains(prompt, "sample of 3") {
		t.Errorf("prompt header = %q, want a sample of 3", prompt)
	}
	for _, c := range []string{"CUST-00", "CUST-01", "CUST-02"} {
		if !strings.Contains(prompt, c) {
			t.Errorf("row %s missing from prompt", c)
		}
	}
}
