package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.temporal.io/sdk/client"

	bomWorkflows "github.com/partsflow/partsflow/services/bom/application/workflows"
)

// fakeWorkflowRun satisfies client.WorkflowRun for handler tests.
type fakeWorkflowRun struct {
	id    string
	runID string
}

func (r fakeWorkflowRun) GetID() string    { return r.id }
func (r fakeWorkflowRun) GetRunID() string { return r.runID }
func (r fakeWorkflowRun) Get(context.Context, interface{}) error {
	return nil
}
func (r fakeWorkflowRun) GetWithOptions(context.Context, interface{}, client.WorkflowRunGetOptions) error {
	return nil
}

// recordingStarter captures the workflow start call.
type recordingStarter struct {
	options client.StartWorkflowOptions
	input   bomWorkflows.RealizeBomInput
	err     error
}

func (s *recordingStarter) ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, wf interface{}, args ...interface{}) (client.WorkflowRun, error) {
	s.options = options
	if len(args) == 1 {
		s.input = args[0].(bomWorkflows.RealizeBomInput)
	}
	if s.err != nil {
		return nil, s.err
	}
	return fakeWorkflowRun{id: options.ID, runID: "run-1"}, nil
}

func suggestAsyncRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/bom/suggest/async", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPostBomSuggestAsync(t *testing.T) {
	body := `{"name":"Rev B","csv_text":"Part Number,Qty\nRC0603FR-0710KL,10","providers":["mouser"]}`

	t.Run("queues workflow and returns 202", func(t *testing.T) {
		starter := &recordingStarter{}
		w := httptest.NewRecorder()

		NewPostBomSuggestAsyncHandler(starter).Execute(w, suggestAsyncRequest(body))

		if w.Code != http.StatusAccepted {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
		}
		if starter.options.TaskQueue != bomWorkflows.TaskQueue {
			t.Errorf("task queue = %q, want %q", starter.options.TaskQueue, bomWorkflows.TaskQueue)
		}
		if starter.input.Name != "Rev B" {
			t.Errorf("input name = %q, want %q", starter.input.Name, "Rev B")
		}
		if starter.input.CSVText == "" || len(starter.input.Providers) != 1 {
			t.Errorf("input not forwarded: %+v", starter.input)
		}

		var resp SuggestBomAsyncResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Status != "queued" {
			t.Errorf("status = %q, want %q", resp.Status, "queued")
		}
		if !strings.HasPrefix(resp.WorkflowID, "bom-realize-") {
			t.Errorf("workflow id = %q, want bom-realize- prefix", resp.WorkflowID)
		}
		if resp.RunID != "run-1" {
			t.Errorf("run id = %q, want %q", resp.RunID, "run-1")
		}
	})

	t.Run("defaults blank name", func(t *testing.T) {
		starter := &recordingStarter{}
		w := httptest.NewRecorder()

		NewPostBomSuggestAsyncHandler(starter).Execute(w, suggestAsyncRequest(`{"csv_text":"MPN,Qty\nLM358,2"}`))

		if w.Code != http.StatusAccepted {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
		}
		if starter.input.Name != "Untitled BOM" {
			t.Errorf("input name = %q, want %q", starter.input.Name, "Untitled BOM")
		}
	})

	t.Run("503 when temporal is disabled", func(t *testing.T) {
		w := httptest.NewRecorder()

		NewPostBomSuggestAsyncHandler(nil).Execute(w, suggestAsyncRequest(body))

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
		if !strings.Contains(w.Body.String(), "disabled") {
			t.Errorf("body = %q, want disabled hint", w.Body.String())
		}
	})

	t.Run("503 when start fails", func(t *testing.T) {
		starter := &recordingStarter{err: errors.New("temporal frontend down")}
		w := httptest.NewRecorder()

		NewPostBomSuggestAsyncHandler(starter).Execute(w, suggestAsyncRequest(body))

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})

	t.Run("422 on missing csv_text", func(t *testing.T) {
		starter := &recordingStarter{}
		w := httptest.NewRecorder()

		NewPostBomSuggestAsyncHandler(starter).Execute(w, suggestAsyncRequest(`{"name":"empty"}`))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
		}
		if starter.options.TaskQueue != "" {
			t.Error("workflow started despite invalid request")
		}
	})
}
