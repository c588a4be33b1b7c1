package form

import (
	"context"

	"github.com/sakif/devconnect/internal/validate"
)

// Search is the profile-search query form. Both filters are optional, but
// a non-empty name must still pass the letters-only rule before a search
// is issued.
type Search struct {
	Draft
	run func(ctx context.Context, name, skill string) error
}

// NewSearch wires the form to run, the function that actually performs the
// search (typically view.Search.Run).
func NewSearch(run func(ctx context.Context, name, skill string) error) *Search {
	return &Search{
		Draft: newDraft(
			fieldSpec{name: "name", rule: validate.FieldSearchName},
			fieldSpec{name: "skill"},
		),
		run: run,
	}
}

// Submit validates the name filter and executes the search.
func (s *Search) Submit(ctx context.Context) error {
	return s.Draft.submit(ctx, "Search failed", func(ctx context.Context) error {
		return s.run(ctx, s.Value("name"), s.Value("skill"))
	})
}
