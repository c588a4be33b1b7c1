package form

import (
	"context"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/session"
	"github.com/sakif/devconnect/internal/validate"
)

// Register is the account-creation form: name, email, password and the
// confirm-password check. The confirmation never leaves the process.
type Register struct {
	Draft
	client *api.Client
}

func NewRegister(client *api.Client) *Register {
	return &Register{
		Draft: newDraft(
			fieldSpec{name: "name", rule: validate.FieldName, required: true},
			fieldSpec{name: "email", rule: validate.FieldEmail, required: true},
			fieldSpec{name: "password", rule: validate.FieldPassword, required: true},
			fieldSpec{name: "confirmPassword", rule: validate.FieldConfirmPassword, required: true},
		),
		client: client,
	}
}

// Submit registers the account. On success the draft is cleared — the user
// is sent to the login view, not logged in automatically.
func (r *Register) Submit(ctx context.Context) error {
	err := r.Draft.submit(ctx, "Registration failed", func(ctx context.Context) error {
		_, err := r.client.Register(ctx, r.Value("name"), r.Value("email"), r.Value("password"))
		return err
	})
	if err != nil {
		return err
	}
	r.reset()
	return nil
}

// Login is the credential form. On success it writes the token and user
// record into the session store — the only place in the client that does.
type Login struct {
	Draft
	client   *api.Client
	sessions session.Store
}

func NewLogin(client *api.Client, sessions session.Store) *Login {
	return &Login{
		Draft: newDraft(
			fieldSpec{name: "email", rule: validate.FieldEmail, required: true},
			fieldSpec{name: "password", rule: validate.FieldPassword, required: true},
		),
		client:   client,
		sessions: sessions,
	}
}

// Submit exchanges the credentials and persists the session.
func (l *Login) Submit(ctx context.Context) error {
	return l.Draft.submit(ctx, "Login failed. Please check your credentials.", func(ctx context.Context) error {
		resp, err := l.client.Login(ctx, l.Value("email"), l.Value("password"))
		if err != nil {
			return err
		}
		return l.sessions.Set(resp.Token, resp.User)
	})
}
