// Package form implements the draft / validate / submit cycle shared by
// every form in the client.
//
// A Draft owns the in-progress field values and their current error
// messages. Each change revalidates the changed field; submit revalidates
// everything and refuses to touch the network while any field is invalid.
// The submit lifecycle is a small state machine:
//
//	Editing → Submitting → Succeeded
//	                     ↘ Failed (form-level message, editable again)
//
// Backend failures surface as a single form-level message; field errors
// stay inline. Validation errors never reach the backend.
package form

import (
	"context"

	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/validate"
)

// State is the submit lifecycle position of a form.
type State int

const (
	Editing State = iota
	Submitting
	Succeeded
	Failed
)

// fieldSpec declares one field of a form: its name, the validation rule
// applied on every change (empty = free-form), and whether submit requires
// a non-empty value.
type fieldSpec struct {
	name     string
	rule     validate.Field
	required bool
}

// Draft holds a form's in-progress values and per-field errors.
// The submit invariant: every error empty AND every required field filled.
type Draft struct {
	specs  []fieldSpec
	values map[string]string
	errors map[string]string

	state     State
	formError string
}

func newDraft(specs ...fieldSpec) Draft {
	return Draft{
		specs:  specs,
		values: make(map[string]string, len(specs)),
		errors: make(map[string]string, len(specs)),
	}
}

// SetField records a new value and revalidates that field only.
//
// Deliberately narrow: changing "password" does not re-run the
// confirmPassword rule, matching the behavior users of the web client see.
// The stale mismatch is caught by the full revalidation at submit time.
func (d *Draft) SetField(name, value string) {
	spec, ok := d.spec(name)
	if !ok {
		return
	}
	d.values[name] = value
	if spec.rule != "" {
		d.errors[name] = validate.Validate(spec.rule, value, d.context())
	}
	// Any edit brings a failed form back to a clean editing state.
	if d.state == Failed || d.state == Succeeded {
		d.state = Editing
		d.formError = ""
	}
}

// Value returns the current draft value for a field.
func (d *Draft) Value(name string) string {
	return d.values[name]
}

// Error returns the current inline error for a field ("" = valid).
func (d *Draft) Error(name string) string {
	return d.errors[name]
}

// FormError returns the form-level message from the last failed submit.
func (d *Draft) FormError() string {
	return d.formError
}

// State returns the current lifecycle state.
func (d *Draft) State() State {
	return d.state
}

// Valid reports whether the draft may be submitted right now: no pending
// field errors and every required field non-empty. It does not recompute
// anything — this is the "submit button enabled" check.
func (d *Draft) Valid() bool {
	for _, spec := range d.specs {
		if d.errors[spec.name] != "" {
			return false
		}
		if spec.required && d.values[spec.name] == "" {
			return false
		}
	}
	return true
}

// validateAll re-runs every rule, refreshing all inline errors, and
// reports whether the draft passed. Run once more at submit time to catch
// cross-field staleness the per-change validation misses.
func (d *Draft) validateAll() bool {
	ok := true
	for _, spec := range d.specs {
		if spec.rule != "" {
			msg := validate.Validate(spec.rule, d.values[spec.name], d.context())
			d.errors[spec.name] = msg
			if msg != "" {
				ok = false
			}
		}
		if spec.required && d.values[spec.name] == "" {
			ok = false
		}
	}
	return ok
}

// context assembles the sibling-field context needed by cross-field rules.
func (d *Draft) context() validate.Context {
	return validate.Context{Password: d.values["password"]}
}

func (d *Draft) spec(name string) (fieldSpec, bool) {
	for _, s := range d.specs {
		if s.name == name {
			return s, true
		}
	}
	return fieldSpec{}, false
}

// reset discards all values and errors and returns to Editing.
func (d *Draft) reset() {
	d.values = make(map[string]string, len(d.specs))
	d.errors = make(map[string]string, len(d.specs))
	d.state = Editing
	d.formError = ""
}

// submit drives the state machine around fn, the actual backend call.
//
// An invalid draft aborts before fn runs — "no network call for an invalid
// draft" is enforced here, in one place, for every form. A failed fn sets
// failMsg as the form-level error and leaves the draft editable.
func (d *Draft) submit(ctx context.Context, failMsg string, fn func(context.Context) error) error {
	if !d.validateAll() {
		d.state = Editing
		return firstFieldError(d)
	}

	d.state = Submitting
	d.formError = ""

	if err := fn(ctx); err != nil {
		d.state = Failed
		d.formError = failMsg
		return err
	}

	d.state = Succeeded
	return nil
}

// firstFieldError converts the draft's current errors into a returnable
// validation error, preferring an inline message over the generic one.
func firstFieldError(d *Draft) error {
	for _, spec := range d.specs {
		if msg := d.errors[spec.name]; msg != "" {
			return apperror.ValidationFailed(spec.name, msg)
		}
	}
	for _, spec := range d.specs {
		if spec.required && d.values[spec.name] == "" {
			return apperror.ValidationFailed(spec.name, "Please fix the errors before submitting.")
		}
	}
	return apperror.ValidationFailed("", "Please fix the errors before submitting.")
}
