package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/roach88/shelflog/internal/book"
	"github.com/roach88/shelflog/internal/kv"
	"github.com/roach88/shelflog/internal/shelf"
	"github.com/roach88/shelflog/internal/view"
)

// ErrInjected is the failure returned by storage after fail_writes or
// fail_reads.
var ErrInjected = errors.New("injected storage failure")

// Harness is the scenario execution engine.
type Harness struct {
	storage *kv.Memory
	store   *shelf.Store
	logger  *slog.Logger
	seq     int64
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against fresh in-memory storage for isolation.
// Execution flow:
//  1. Seed the slot, if requested
//  2. Load the store (traced as "load")
//  3. Execute steps, checking expect blocks
//  4. Evaluate assertions against the trace and final state
func Run(scenario *Scenario) (*Result, error) {
	locale := view.DefaultLocale
	if scenario.Locale != "" {
		tag, err := language.Parse(scenario.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", scenario.Locale, err)
		}
		locale = tag
	}

	storage := kv.NewMemory()
	defer storage.Close()
	if scenario.Seed != nil {
		storage.Seed(shelf.DefaultKey, *scenario.Seed)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	h := &Harness{
		storage: storage,
		store: shelf.New(storage,
			shelf.WithLogger(logger),
			shelf.WithProjector(view.New(locale)),
		),
		logger: logger,
	}

	ctx := context.Background()
	result := NewResult()

	h.record(result, "load", nil, h.store.Load(ctx))

	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	result.State = h.state()
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) executeStep(ctx context.Context, index int, step Step, result *Result) error {
	switch {
	case step.Add != nil:
		h.record(result, "add", bookArgs(*step.Add), h.store.Add(ctx, *step.Add).Wait())
	case step.Update != nil:
		h.record(result, "update", bookArgs(*step.Update), h.store.Update(ctx, *step.Update).Wait())
	case step.Delete != nil:
		h.record(result, "delete", map[string]any{"id": *step.Delete}, h.store.Delete(ctx, *step.Delete).Wait())
	case step.Clear:
		h.record(result, "clear", nil, h.store.Clear(ctx).Wait())
	case step.Replace != nil:
		books := *step.Replace
		h.record(result, "replace", map[string]any{"count": len(books)}, h.store.ReplaceAll(ctx, books).Wait())
	case step.Search != nil:
		h.store.SetSearchQuery(*step.Search)
		h.record(result, "search", map[string]any{"query": *step.Search}, nil)
	case step.Sort != nil:
		h.store.SetSortOption(book.SortOption(*step.Sort))
		h.record(result, "sort", map[string]any{"key": *step.Sort}, nil)
	case step.Reload:
		h.record(result, "reload", nil, h.store.Load(ctx))
	case step.FailWrites != nil:
		h.storage.FailWrites(injected(*step.FailWrites))
		h.record(result, "fail_writes", map[string]any{"on": *step.FailWrites}, nil)
	case step.FailReads != nil:
		h.storage.FailReads(injected(*step.FailReads))
		h.record(result, "fail_reads", map[string]any{"on": *step.FailReads}, nil)
	case step.Corrupt != nil:
		h.storage.Seed(h.store.Key(), *step.Corrupt)
		h.record(result, "corrupt", nil, nil)
	case step.Expect == nil:
		return fmt.Errorf("empty step")
	}

	if step.Expect != nil {
		for _, msg := range h.checkExpect(*step.Expect, result) {
			result.AddError(fmt.Sprintf("steps[%d]: %s", index, msg))
		}
	}
	return nil
}

func (h *Harness) record(result *Result, op string, args map[string]any, err error) {
	h.seq++
	event := TraceEvent{
		Seq:   h.seq,
		Op:    op,
		Args:  args,
		Count: h.store.Len(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	result.AddTrace(event)

	h.logger.Debug("step executed", "seq", event.Seq, "op", op, "count", event.Count, "error", event.Error)
}

func (h *Harness) checkExpect(e Expect, result *Result) []string {
	var failures []string

	if e.Visible != nil {
		if got := names(h.store.Visible()); !slices.Equal(got, e.Visible) {
			failures = append(failures, fmt.Sprintf("expected visible %q, got %q", e.Visible, got))
		}
	}
	if e.Collection != nil {
		if got := names(h.store.Books()); !slices.Equal(got, e.Collection) {
			failures = append(failures, fmt.Sprintf("expected collection %q, got %q", e.Collection, got))
		}
	}
	if e.Count != nil && h.store.Len() != *e.Count {
		failures = append(failures, fmt.Sprintf("expected count %d, got %d", *e.Count, h.store.Len()))
	}
	if e.Stored != nil {
		if got := h.storedCount(); got != *e.Stored {
			failures = append(failures, fmt.Sprintf("expected %d stored book(s), got %d", *e.Stored, got))
		}
	}
	if e.Error != "" {
		var last string
		if n := len(result.Trace); n > 0 {
			last = result.Trace[n-1].Error
		}
		switch {
		case e.Error == "none" && last != "":
			failures = append(failures, fmt.Sprintf("expected no error, got %q", last))
		case e.Error != "none" && !strings.Contains(last, e.Error):
			failures = append(failures, fmt.Sprintf("expected error containing %q, got %q", e.Error, last))
		}
	}
	return failures
}

// storedCount returns the number of books in the slot: 0 when the slot is
// absent or empty, -1 when it does not decode.
func (h *Harness) storedCount() int {
	value, ok := h.storage.Peek(h.store.Key())
	if !ok || value == "" {
		return 0
	}
	books, err := shelf.Decode([]byte(value))
	if err != nil {
		return -1
	}
	return len(books)
}

// state builds the final state for final_state assertions. Lists are []any
// so they compare equal to YAML-decoded expectations.
func (h *Harness) state() map[string]any {
	books := h.store.Books()
	ids := make([]any, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}

	return map[string]any{
		"count":      h.store.Len(),
		"stored":     h.storedCount(),
		"collection": toAny(names(books)),
		"visible":    toAny(names(h.store.Visible())),
		"ids":        ids,
		"search":     h.store.SearchQuery(),
		"sort":       string(h.store.SortOption()),
	}
}

func injected(on bool) error {
	if on {
		return ErrInjected
	}
	return nil
}

func bookArgs(b book.Book) map[string]any {
	return map[string]any{
		"id":     b.ID,
		"name":   b.Name,
		"rating": b.Rating,
	}
}

func names(books []book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Name
	}
	return out
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
