package harness

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v", event.Seq, event.Op, event.Args)
			if event.Error != "" {
				fmt.Fprintf(&buf, " error=%q", event.Error)
			}
			fmt.Fprintln(&buf)
		}
	}
	return buf.String()
}

// assertTraceContains checks if the trace contains an op with matching
// args (subset match).
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if event.Op == assertion.Op && matchArgs(event.Args, assertion.Args) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("op %s with args %v", assertion.Op, assertion.Args),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if ops appear in the specified order.
// Ops don't need to be consecutive (intervening steps are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	next := 0
	for _, event := range trace {
		if next < len(assertion.Ops) && event.Op == assertion.Ops[next] {
			next++
		}
	}
	if next == len(assertion.Ops) {
		return nil
	}

	actual := fmt.Sprintf("missing %s after %v", assertion.Ops[next], assertion.Ops[:next])
	if !slices.ContainsFunc(trace, func(e TraceEvent) bool { return e.Op == assertion.Ops[next] }) {
		actual = fmt.Sprintf("missing op: %s", assertion.Ops[next])
	}
	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: fmt.Sprintf("ops in order: %v", assertion.Ops),
		Actual:   actual,
		Trace:    trace,
	}
}

// assertTraceCount checks if the op appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op == assertion.Op {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Op),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState checks the final state against expected values
// (subset match).
func assertFinalState(state map[string]any, assertion Assertion) error {
	keys := make([]string, 0, len(assertion.Expect))
	for k := range assertion.Expect {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		expected := assertion.Expect[key]
		actual, ok := state[key]
		if !ok {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("%s = %v", key, expected),
				Actual:   fmt.Sprintf("unknown state key %q", key),
			}
		}
		if !valuesEqual(actual, expected) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("%s = %v", key, expected),
				Actual:   fmt.Sprintf("%s = %v", key, actual),
			}
		}
	}
	return nil
}

// matchArgs checks that every expected arg is present in actual with an
// equal value.
func matchArgs(actual, expected map[string]any) bool {
	for key, want := range expected {
		got, ok := actual[key]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// valuesEqual compares values that may come from YAML (int, []any) or
// from the harness (int, []any, string, bool).
func valuesEqual(actual, expected any) bool {
	if reflect.DeepEqual(actual, expected) {
		return true
	}
	// YAML may decode small numbers with a different integer type.
	return fmt.Sprint(actual) == fmt.Sprint(expected) && isNumber(actual) && isNumber(expected)
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	}
	return false
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertFinalState:
			err = assertFinalState(result.State, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
