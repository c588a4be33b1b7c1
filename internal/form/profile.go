package form

import (
	"context"
	"io"
	"strings"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/validate"
)

// Profile is the profile-edit form. Skills is edited as a comma-separated
// string and displayed as a sequence; that boundary transform lives here,
// not in the model. An optional image upload runs before the profile save,
// so the saved profile always references the uploaded URL.
type Profile struct {
	Draft
	client *api.Client

	imageName string
	image     io.Reader
}

func NewProfile(client *api.Client) *Profile {
	return &Profile{
		Draft: newDraft(
			fieldSpec{name: "name", rule: validate.FieldName, required: true},
			fieldSpec{name: "bio"},
			fieldSpec{name: "skills"},
			fieldSpec{name: "github", rule: validate.FieldGitHub},
			fieldSpec{name: "linkedin", rule: validate.FieldLinkedIn},
			fieldSpec{name: "twitter", rule: validate.FieldTwitter},
			fieldSpec{name: "imageUrl"},
		),
		client: client,
	}
}

// Prefill loads an existing profile into the draft, joining skills back
// into the comma-separated edit representation.
func (p *Profile) Prefill(prof *model.Profile) {
	p.SetField("name", prof.Name)
	p.SetField("bio", prof.Bio)
	p.SetField("skills", strings.Join(prof.Skills, ", "))
	p.SetField("github", prof.Social.GitHub)
	p.SetField("linkedin", prof.Social.LinkedIn)
	p.SetField("twitter", prof.Social.Twitter)
	p.SetField("imageUrl", prof.ImageURL)
}

// AttachImage stages an image to upload on the next Submit.
func (p *Profile) AttachImage(filename string, r io.Reader) {
	p.imageName = filename
	p.image = r
}

// Skills returns the draft's skills as the display-mode sequence: split on
// commas, trimmed, blanks dropped.
func (p *Profile) Skills() []string {
	var out []string
	for _, s := range strings.Split(p.Value("skills"), ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Submit validates, uploads the staged image if any, then saves the
// profile. It returns the server's stored profile on success.
func (p *Profile) Submit(ctx context.Context) (*model.Profile, error) {
	var saved *model.Profile
	err := p.Draft.submit(ctx, "Failed to update profile", func(ctx context.Context) error {
		imageURL := p.Value("imageUrl")

		if p.image != nil {
			uploaded, err := p.client.UploadImage(ctx, p.imageName, p.image)
			if err != nil {
				return err
			}
			imageURL = uploaded
		}

		result, err := p.client.SaveProfile(ctx, api.ProfilePayload{
			Name:     p.Value("name"),
			Bio:      p.Value("bio"),
			Skills:   p.Value("skills"),
			GitHub:   p.Value("github"),
			LinkedIn: p.Value("linkedin"),
			Twitter:  p.Value("twitter"),
			ImageURL: imageURL,
		})
		if err != nil {
			return err
		}

		saved = result
		p.values["imageUrl"] = imageURL
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The staged image is consumed whether or not the user stages another.
	p.image = nil
	p.imageName = ""
	return saved, nil
}
