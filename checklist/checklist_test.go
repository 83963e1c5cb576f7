package checklist

import (
	"context"
	"errors"
	"strings"
	"testing"
)

var testSteps = []string{"CV uploaded", "CV parsed", "CV screened"}

func TestNewAllUnchecked(t *testing.T) {
	c := New("cand-1", testSteps...)

	if c.CandidateID != "cand-1" {
		t.Errorf("expected candidate id cand-1, got %s", c.CandidateID)
	}
	if len(c.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(c.Steps))
	}
	for i, s := range c.Steps {
		if s.Label != testSteps[i] {
			t.Errorf("step %d = %q, want %q (order must be preserved)", i, s.Label, testSteps[i])
		}
		if s.Done {
			t.Errorf("step %q should start unchecked", s.Label)
		}
	}
}

func TestNextUnchecked(t *testing.T) {
	c := New("cand-1", testSteps...)

	step, pending := c.NextUnchecked()
	if !pending || step.Label != "CV uploaded" {
		t.Errorf("expected first step, got %q pending=%v", step.Label, pending)
	}

	c.Steps[0].Done = true
	c.Steps[1].Done = true
	step, pending = c.NextUnchecked()
	if !pending || step.Label != "CV screened" {
		t.Errorf("expected third step, got %q pending=%v", step.Label, pending)
	}

	c.Steps[2].Done = true
	if _, pending = c.NextUnchecked(); pending {
		t.Error("expected no pending step when all are done")
	}
	if !c.AllDone() {
		t.Error("AllDone should be true")
	}
}

func TestMarkdown(t *testing.T) {
	c := New("cand-1", "CV uploaded", "CV parsed")
	c.Steps[0].Done = true

	got := c.Markdown()
	want := "- [x] CV uploaded\n- [ ] CV parsed\n"
	if got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

func TestMemoryStoreMarkDoneIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Create(ctx, New("cand-1", testSteps...)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Marking twice is a no-op, not an error.
	for i := 0; i < 2; i++ {
		if err := store.MarkDone(ctx, "cand-1", "CV parsed"); err != nil {
			t.Fatalf("MarkDone attempt %d returned error: %v", i+1, err)
		}
	}

	c, err := store.Load(ctx, "cand-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !c.IsDone("CV parsed") {
		t.Error("CV parsed should be done")
	}
	if c.IsDone("CV uploaded") {
		t.Error("CV uploaded should not be done")
	}
}

func TestMemoryStoreUnknownStep(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Create(ctx, New("cand-1", testSteps...)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	err := store.MarkDone(ctx, "cand-1", "Nonexistent step")
	if !errors.Is(err, ErrStepNotFound) {
		t.Errorf("expected ErrStepNotFound, got %v", err)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.MarkDone(context.Background(), "missing", "CV parsed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIsPhaseComplete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Create(ctx, New("cand-1", testSteps...)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	phase := []string{"CV uploaded", "CV parsed"}

	complete, err := store.IsPhaseComplete(ctx, "cand-1", phase)
	if err != nil {
		t.Fatalf("IsPhaseComplete returned error: %v", err)
	}
	if complete {
		t.Error("phase should be incomplete with no steps done")
	}

	if err := store.MarkDone(ctx, "cand-1", "CV uploaded"); err != nil {
		t.Fatal(err)
	}
	complete, _ = store.IsPhaseComplete(ctx, "cand-1", phase)
	if complete {
		t.Error("phase should be incomplete with one of two steps done")
	}

	if err := store.MarkDone(ctx, "cand-1", "CV parsed"); err != nil {
		t.Fatal(err)
	}
	complete, _ = store.IsPhaseComplete(ctx, "cand-1", phase)
	if !complete {
		t.Error("phase should be complete with both steps done")
	}
}

func TestAddNote(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Create(ctx, New("cand-1", testSteps...)); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := store.AddNote(ctx, "cand-1", "left a voicemail"); err != nil {
		t.Fatalf("AddNote returned error: %v", err)
	}

	c, err := store.Load(ctx, "cand-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(c.Notes) != 1 || c.Notes[0].Text != "left a voicemail" {
		t.Errorf("unexpected notes: %+v", c.Notes)
	}
}

func TestHTMLExport(t *testing.T) {
	c := New("cand-1", "CV uploaded", "CV parsed")
	c.Steps[0].Done = true

	html, err := c.HTML()
	if err != nil {
		t.Fatalf("HTML returned error: %v", err)
	}
	if !strings.Contains(html, "CV uploaded") || !strings.Contains(html, "CV parsed") {
		t.Errorf("rendered HTML is missing step labels: %s", html)
	}
	if !strings.Contains(html, "checkbox") {
		t.Errorf("rendered HTML has no checkboxes: %s", html)
	}
}

func TestHTMLExportSanitizesLabels(t *testing.T) {
	c := New("cand-1", `<script>alert("x")</script> CV uploaded`)

	html, err := c.HTML()
	if err != nil {
		t.Fatalf("HTML returned error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("script tag survived sanitization: %s", html)
	}
}
