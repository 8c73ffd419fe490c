package book

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when a draft or record does not satisfy its
// schema. It lists at most one error per field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the names of the rejected fields.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, len(e))
	for i, v := range e {
		fields[i] = v.Field
	}
	return fields
}

// Validator checks drafts and records against the CUE schemas in
// schema.cue. A Validator is not safe for concurrent use.
type Validator struct {
	ctx   *cue.Context
	draft cue.Value
	book  cue.Value
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile book schema: %w", err)
	}

	v := &Validator{
		ctx:   ctx,
		draft: schema.LookupPath(cue.ParsePath("#Draft")),
		book:  schema.LookupPath(cue.ParsePath("#Book")),
	}
	if !v.draft.Exists() || !v.book.Exists() {
		return nil, fmt.Errorf("compile book schema: missing #Draft or #Book")
	}
	return v, nil
}

// ValidateDraft rejects drafts with a blank name or genre, or a rating
// outside 1..10. The returned error is a ValidationErrors.
func (v *Validator) ValidateDraft(d Draft) error {
	return v.check(v.draft, d)
}

// ValidateBook checks that an imported record has an id and well-typed
// fields. It does not apply the form's rules.
func (v *Validator) ValidateBook(b Book) error {
	return v.check(v.book, b)
}

func (v *Validator) check(schema cue.Value, x any) error {
	encoded := v.ctx.Encode(x)
	if err := encoded.Err(); err != nil {
		return fmt.Errorf("encode %T: %w", x, err)
	}

	err := schema.Unify(encoded).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}
	return toValidationErrors(err)
}

// toValidationErrors flattens CUE errors into one entry per field.
func toValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	seen := make(map[string]bool)

	for _, e := range errors.Errors(err) {
		field := fieldFromPath(e.Path())
		if seen[field] {
			continue
		}
		seen[field] = true

		format, args := e.Msg()
		out = append(out, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if len(out) == 0 {
		out = append(out, ValidationError{Field: "record", Message: err.Error()})
	}
	return out
}

// fieldFromPath drops definition selectors (#Draft, #Book) from a CUE path.
func fieldFromPath(path []string) string {
	var parts []string
	for _, p := range path {
		if strings.HasPrefix(p, "#") {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "record"
	}
	return strings.Join(parts, ".")
}
