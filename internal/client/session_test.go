package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func decodeInto(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

const taskA = `{"id":1,"title":"A","completed":false,"createdAt":"2026-09-01T10:00:00Z","updatedAt":"2026-09-01T10:00:00Z"}`

// editServer serves task A on GET and delegates PUT to the given handler.
func editServer(t *testing.T, onPut http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(taskA))
		case http.MethodPut:
			onPut(w, r)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
}

func strPtr(s string) *string { return &s }

func TestSubmitWithoutLoadIsNoop(t *testing.T) {
	srv := editServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	})
	defer srv.Close()

	notify := &recordingNotifier{}
	sess := NewEditSession(NewStore(New(srv.URL, nil)), notify, 1)
	sess.Edit(TaskUpdate{Title: strPtr("B")})

	if err := sess.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notify.successes) != 0 || len(notify.failures) != 0 {
		t.Fatal("no notifications expected")
	}
}

func TestSubmitCommitsServerValue(t *testing.T) {
	// The server normalizes the title; its value must win over the
	// optimistic one.
	srv := editServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"title":"B (reviewed)","completed":false,"createdAt":"2026-09-01T10:00:00Z","updatedAt":"2026-09-01T10:05:00Z"}`))
	})
	defer srv.Close()

	notify := &recordingNotifier{}
	sess := NewEditSession(NewStore(New(srv.URL, nil)), notify, 1)
	ctx := context.Background()

	if err := sess.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.State() != StateLoaded {
		t.Fatalf("state = %v, want loaded", sess.State())
	}

	sess.Edit(TaskUpdate{Title: strPtr("B")})
	if sess.State() != StateEditing {
		t.Fatalf("state = %v, want editing", sess.State())
	}

	if err := sess.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sess.State() != StateCommitted {
		t.Fatalf("state = %v, want committed", sess.State())
	}
	if got := sess.Task().Title; got != "B (reviewed)" {
		t.Fatalf("visible title = %q, want the server's value", got)
	}
	if len(notify.successes) != 1 || notify.successes[0] != "Changes saved successfully" {
		t.Fatalf("successes = %v", notify.successes)
	}
	if len(notify.failures) != 0 {
		t.Fatalf("failures = %v", notify.failures)
	}
}

func TestSubmitShowsOptimisticValueWhileInFlight(t *testing.T) {
	var inFlightTitle string
	notify := &recordingNotifier{}

	var sess *EditSession
	srv := editServer(t, func(w http.ResponseWriter, r *http.Request) {
		inFlightTitle = sess.Task().Title
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Title is required"}`))
	})
	defer srv.Close()

	sess = NewEditSession(NewStore(New(srv.URL, nil)), notify, 1)
	ctx := context.Background()

	if err := sess.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.Edit(TaskUpdate{Title: strPtr("B")})
	if err := sess.Submit(ctx); err == nil {
		t.Fatal("expected error")
	}

	if inFlightTitle != "B" {
		t.Fatalf("in-flight title = %q, want the optimistic value", inFlightTitle)
	}
	if got := sess.Task().Title; got != "A" {
		t.Fatalf("title after rollback = %q, want A", got)
	}
}

func TestSubmitRollsBackOn400WithServerMessage(t *testing.T) {
	srv := editServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Title is too long"}`))
	})
	defer srv.Close()

	notify := &recordingNotifier{}
	sess := NewEditSession(NewStore(New(srv.URL, nil)), notify, 1)
	ctx := context.Background()

	if err := sess.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.Edit(TaskUpdate{Title: strPtr("B")})

	if err := sess.Submit(ctx); err == nil {
		t.Fatal("expected error")
	}
	if sess.State() != StateRolledBack {
		t.Fatalf("state = %v, want rolled-back", sess.State())
	}
	if got := sess.Task().Title; got != "A" {
		t.Fatalf("title = %q, want A", got)
	}
	if len(notify.failures) != 1 || notify.failures[0] != "Failed to save changes: Title is too long" {
		t.Fatalf("failures = %v", notify.failures)
	}
	if len(notify.successes) != 0 {
		t.Fatalf("successes = %v", notify.successes)
	}
}

func TestSubmitRollsBackOn500WithGenericMessage(t *testing.T) {
	srv := editServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"pq: connection reset by peer"}`))
	})
	defer srv.Close()

	notify := &recordingNotifier{}
	sess := NewEditSession(NewStore(New(srv.URL, nil)), notify, 1)
	ctx := context.Background()

	if err := sess.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.Edit(TaskUpdate{Title: strPtr("B")})

	if err := sess.Submit(ctx); err == nil {
		t.Fatal("expected error")
	}
	if sess.State() != StateRolledBack {
		t.Fatalf("state = %v", sess.State())
	}
	if got := sess.Task().Title; got != "A" {
		t.Fatalf("title = %q, want A", got)
	}
	// The raw server error must not leak into the notification.
	if len(notify.failures) != 1 || notify.failures[0] != "Failed to save changes: An unknown server error occurred" {
		t.Fatalf("failures = %v", notify.failures)
	}
}

func TestSubmitRollsBackOnNetworkFailure(t *testing.T) {
	srv := editServer(t, func(w http.ResponseWriter, r *http.Request) {})
	notify := &recordingNotifier{}
	sess := NewEditSession(NewStore(New(srv.URL, nil)), notify, 1)
	ctx := context.Background()

	if err := sess.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.Edit(TaskUpdate{Title: strPtr("B")})

	srv.Close() // submit now fails at the transport level

	if err := sess.Submit(ctx); err == nil {
		t.Fatal("expected error")
	}
	if sess.State() != StateRolledBack {
		t.Fatalf("state = %v", sess.State())
	}
	if got := sess.Task().Title; got != "A" {
		t.Fatalf("title = %q, want A", got)
	}
	if len(notify.failures) != 1 || notify.failures[0] != "Failed to save changes: Could not reach the server" {
		t.Fatalf("failures = %v", notify.failures)
	}
}

func TestEditsAccumulateAcrossCalls(t *testing.T) {
	var received TaskUpdate
	srv := editServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := decodeInto(r, &received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_, _ = w.Write([]byte(taskA))
	})
	defer srv.Close()

	sess := NewEditSession(NewStore(New(srv.URL, nil)), &recordingNotifier{}, 1)
	ctx := context.Background()

	if err := sess.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	completed := true
	sess.Edit(TaskUpdate{Title: strPtr("B")})
	sess.Edit(TaskUpdate{Completed: &completed})
	sess.Edit(TaskUpdate{Title: strPtr("C")})

	if err := sess.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if received.Title == nil || *received.Title != "C" {
		t.Fatalf("title = %v, want C", received.Title)
	}
	if received.Completed == nil || !*received.Completed {
		t.Fatal("completed edit lost")
	}
	if received.Description != nil {
		t.Fatal("description was never edited")
	}
}
