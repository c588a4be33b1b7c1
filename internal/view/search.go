package view

import (
	"context"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/model"
)

// Search is the profile-search view. Mounting loads every profile; each
// submitted query re-fetches with the filters applied. There is no local
// filtering — the backend owns the match semantics.
type Search struct {
	client   *api.Client
	results  []model.Profile
	searched bool
	loading  bool
}

func NewSearch(client *api.Client) *Search {
	return &Search{client: client}
}

// LoadAll fetches every profile, the view's initial state.
func (v *Search) LoadAll(ctx context.Context) error {
	return v.Run(ctx, "", "")
}

// Run executes a search. On failure the previous results are cleared
// rather than kept, matching the view's "no stale matches" behavior.
func (v *Search) Run(ctx context.Context, name, skill string) error {
	v.loading = true
	defer func() {
		v.loading = false
		v.searched = true
	}()

	results, err := v.client.SearchProfiles(ctx, name, skill)
	if err != nil {
		v.results = nil
		return err
	}
	v.results = results
	return nil
}

// Results returns the profiles from the most recent fetch.
func (v *Search) Results() []model.Profile {
	return v.results
}

// Searched reports whether at least one fetch has completed, so an empty
// result list can be told apart from "not searched yet".
func (v *Search) Searched() bool {
	return v.searched
}

// Loading reports whether a fetch is in flight.
func (v *Search) Loading() bool {
	return v.loading
}
