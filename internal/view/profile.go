package view

import (
	"context"
	"errors"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/model"
)

// Profile is the "my profile" view. A user without a profile is a normal
// state, not a failure: Load distinguishes it so the caller can offer
// profile creation instead of an error message.
type Profile struct {
	client   *api.Client
	profile  *model.Profile
	notFound bool
}

func NewProfile(client *api.Client) *Profile {
	return &Profile{client: client}
}

// Load fetches the logged-in user's profile. A missing profile sets
// NotFound and returns nil; every other failure is returned.
func (v *Profile) Load(ctx context.Context) error {
	profile, err := v.client.MyProfile(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			v.profile = nil
			v.notFound = true
			return nil
		}
		return err
	}
	v.profile = profile
	v.notFound = false
	return nil
}

// Profile returns the fetched profile, or nil before Load / when absent.
func (v *Profile) Profile() *model.Profile {
	return v.profile
}

// NotFound reports that the user has no profile yet.
func (v *Profile) NotFound() bool {
	return v.notFound
}
