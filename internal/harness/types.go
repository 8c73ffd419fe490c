package harness

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq   int64          `json:"seq"`
	Op    string         `json:"op"`
	Args  map[string]any `json:"args,omitempty"`
	Count int            `json:"count"`           // collection size after the step
	Error string         `json:"error,omitempty"` // load or persist failure
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect block and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final state used by final_state assertions.
	State map[string]any `json:"state,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		State:  make(map[string]any),
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
