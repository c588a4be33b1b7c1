// Command devconnect is the terminal client for the DevConnect backend.
//
// main.go only reads configuration, builds the dependency graph (session
// store → API client → gate/forms/views) and dispatches the subcommand;
// all behavior lives in the internal packages.
//
// Configuration (flags beat env, env beats .env):
//
//	DEVCONNECT_API_URL   backend base URL   (default http://localhost:5000)
//	DEVCONNECT_DATA_DIR  session directory  (default <user config dir>/devconnect)
//	DEVCONNECT_LOG       log level          (default warn)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/apperror"
	"github.com/sakif/devconnect/internal/form"
	"github.com/sakif/devconnect/internal/gate"
	"github.com/sakif/devconnect/internal/session"
	sessionsqlite "github.com/sakif/devconnect/internal/session/sqlite"
	"github.com/sakif/devconnect/internal/view"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "devconnect:", err)
		os.Exit(1)
	}
}

// app bundles the wired dependency graph handed to every subcommand.
type app struct {
	client   *api.Client
	sessions session.Store
	gate     *gate.Gate
	logger   *slog.Logger
}

func run(args []string) error {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("DEVCONNECT_LOG")),
	}))

	baseURL := os.Getenv("DEVCONNECT_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	dataDir := os.Getenv("DEVCONNECT_DATA_DIR")
	if dataDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("resolving config dir: %w", err)
		}
		dataDir = filepath.Join(configDir, "devconnect")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	sessions, err := sessionsqlite.New(filepath.Join(dataDir, "session.db"))
	if err != nil {
		return err
	}
	defer sessions.Close()

	a := &app{
		client:   api.New(baseURL, sessions, logger),
		sessions: sessions,
		gate:     gate.New(sessions),
		logger:   logger,
	}

	if len(args) == 0 {
		usage()
		return errors.New("a command is required")
	}

	ctx := context.Background()
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami()
	case "profile":
		return a.profile(ctx, rest)
	case "search":
		return a.search(ctx, rest)
	case "posts":
		return a.posts(ctx, rest)
	case "admin":
		return a.admin(ctx, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: devconnect <command> [flags]

  register   create an account        (-name -email -password -confirm)
  login      start a session          (-email -password)
  logout     end the session
  whoami     show the logged-in user
  profile    show | edit              (edit: -name -bio -skills -github -linkedin -twitter -image)
  search     search profiles          (-name -skill)
  posts      list | create | like | unlike | delete | comment
  admin      users | posts | delete-user | delete-post
`)
}

// enter aborts a command when the gate denies its route, mirroring the web
// client's redirect to the login view.
func (a *app) enter(route string) error {
	if d := a.gate.CanEnter(route); !d.Allow {
		return fmt.Errorf("not allowed: please log in first (redirected to %s)", d.RedirectTo)
	}
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	f := form.NewRegister(a.client)
	f.SetField("name", *name)
	f.SetField("email", *email)
	f.SetField("password", *password)
	f.SetField("confirmPassword", *confirm)

	if err := f.Submit(ctx); err != nil {
		return formError(f.FormError(), err)
	}
	fmt.Println("Registration successful. Please login.")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	f := form.NewLogin(a.client, a.sessions)
	f.SetField("email", *email)
	f.SetField("password", *password)

	if err := f.Submit(ctx); err != nil {
		return formError(f.FormError(), err)
	}

	sess, _, _ := a.sessions.Get()
	fmt.Printf("Logged in as %s", sess.User.Name)
	if sess.User.IsAdmin {
		fmt.Print(" (admin)")
	}
	fmt.Println()
	return nil
}

func (a *app) logout() error {
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami() error {
	sess, ok, err := a.sessions.Get()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}
	role := "User"
	if sess.User.IsAdmin {
		role = "Admin"
	}
	fmt.Printf("%s <%s> — %s\n", sess.User.Name, sess.User.Email, role)
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("profile requires a subcommand: show | edit")
	}
	switch args[0] {
	case "show":
		return a.profileShow(ctx)
	case "edit":
		return a.profileEdit(ctx, args[1:])
	default:
		return fmt.Errorf("unknown profile subcommand %q", args[0])
	}
}

func (a *app) profileShow(ctx context.Context) error {
	if err := a.enter("/home/my-profile"); err != nil {
		return err
	}

	v := view.NewProfile(a.client)
	if err := v.Load(ctx); err != nil {
		return err
	}
	if v.NotFound() {
		fmt.Println("No profile found. Please create your profile.")
		return nil
	}

	p := v.Profile()
	fmt.Println("Bio:     ", p.Bio)
	fmt.Println("Skills:  ", strings.Join(p.Skills, ", "))
	fmt.Println("GitHub:  ", p.Social.GitHub)
	fmt.Println("LinkedIn:", p.Social.LinkedIn)
	fmt.Println("Twitter: ", p.Social.Twitter)
	if p.ImageURL != "" {
		fmt.Println("Image:   ", p.ImageURL)
	}
	return nil
}

func (a *app) profileEdit(ctx context.Context, args []string) error {
	if err := a.enter("/home/edit-profile"); err != nil {
		return err
	}

	fs := flag.NewFlagSet("profile edit", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	bio := fs.String("bio", "", "short bio")
	skills := fs.String("skills", "", "comma-separated skills")
	github := fs.String("github", "", "GitHub profile URL")
	linkedin := fs.String("linkedin", "", "LinkedIn profile URL")
	twitter := fs.String("twitter", "", "Twitter profile URL")
	image := fs.String("image", "", "path to a profile image to upload")
	fs.Parse(args)

	f := form.NewProfile(a.client)

	// Pre-populate from the existing profile so unset flags keep their
	// current values; a brand-new profile starts from a blank draft.
	pv := view.NewProfile(a.client)
	if err := pv.Load(ctx); err != nil {
		return err
	}
	if p := pv.Profile(); p != nil {
		f.Prefill(p)
	}

	set := func(field, value string) {
		if value != "" {
			f.SetField(field, value)
		}
	}
	set("name", *name)
	set("bio", *bio)
	set("skills", *skills)
	set("github", *github)
	set("linkedin", *linkedin)
	set("twitter", *twitter)

	if *image != "" {
		file, err := os.Open(*image)
		if err != nil {
			return fmt.Errorf("opening image: %w", err)
		}
		defer file.Close()
		f.AttachImage(filepath.Base(*image), file)
	}

	if _, err := f.Submit(ctx); err != nil {
		return formError(f.FormError(), err)
	}
	fmt.Println("Profile updated successfully!")
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	if err := a.enter("/home/search"); err != nil {
		return err
	}

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	name := fs.String("name", "", "filter by name")
	skill := fs.String("skill", "", "filter by skill")
	fs.Parse(args)

	v := view.NewSearch(a.client)
	f := form.NewSearch(v.Run)
	f.SetField("name", *name)
	f.SetField("skill", *skill)

	if err := f.Submit(ctx); err != nil {
		return formError(f.FormError(), err)
	}

	results := v.Results()
	if len(results) == 0 {
		fmt.Println("No profiles found matching your criteria.")
		return nil
	}
	for _, p := range results {
		owner := ""
		if p.User != nil {
			owner = p.User.Name
		}
		fmt.Printf("%s — %s\n  Skills: %s\n", owner, orText(p.Bio, "No bio available."), strings.Join(p.Skills, ", "))
	}
	return nil
}

func (a *app) posts(ctx context.Context, args []string) error {
	if err := a.enter("/home/posts"); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("posts requires a subcommand: list | create | like | unlike | delete | comment")
	}

	v := view.NewPosts(a.client)
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		if err := v.Load(ctx); err != nil {
			return err
		}
		printPosts(v)
		return nil

	case "create":
		fs := flag.NewFlagSet("posts create", flag.ExitOnError)
		text := fs.String("text", "", "post text")
		fs.Parse(rest)

		f := form.NewPost(v.Create)
		f.SetField("text", *text)
		if err := f.Submit(ctx); err != nil {
			if errors.Is(err, apperror.ErrValidation) {
				return errors.New("Please enter text")
			}
			return formError(f.FormError(), err)
		}
		fmt.Println("Posted.")
		return nil

	case "like", "unlike", "delete":
		fs := flag.NewFlagSet("posts "+sub, flag.ExitOnError)
		id := fs.String("id", "", "post id")
		fs.Parse(rest)
		if *id == "" {
			return errors.New("-id is required")
		}

		var err error
		switch sub {
		case "like":
			err = v.Like(ctx, *id)
		case "unlike":
			err = v.Unlike(ctx, *id)
		case "delete":
			err = v.Delete(ctx, *id)
		}
		if err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil

	case "comment":
		fs := flag.NewFlagSet("posts comment", flag.ExitOnError)
		id := fs.String("id", "", "post id")
		text := fs.String("text", "", "comment text")
		fs.Parse(rest)
		if *id == "" {
			return errors.New("-id is required")
		}

		f := form.NewComment(*id, v.Comment)
		f.SetField("text", *text)
		if err := f.Submit(ctx); err != nil {
			if errors.Is(err, apperror.ErrValidation) {
				return errors.New("Please enter a comment")
			}
			return formError(f.FormError(), err)
		}
		fmt.Println("Comment added.")
		return nil

	default:
		return fmt.Errorf("unknown posts subcommand %q", sub)
	}
}

func (a *app) admin(ctx context.Context, args []string) error {
	if err := a.enter(gate.RouteAdmin); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("admin requires a subcommand: users | posts | delete-user | delete-post")
	}

	v := view.NewAdmin(a.client)
	sub, rest := args[0], args[1:]

	switch sub {
	case "users":
		if err := v.LoadUsers(ctx); err != nil {
			return err
		}
		if len(v.Users()) == 0 {
			fmt.Println("No users found")
			return nil
		}
		for _, u := range v.Users() {
			fmt.Printf("%s  %s  <%s>\n", u.ID, u.Name, u.Email)
		}
		return nil

	case "posts":
		if err := v.LoadPosts(ctx); err != nil {
			return err
		}
		if len(v.Posts()) == 0 {
			fmt.Println("No posts found")
			return nil
		}
		for _, p := range v.Posts() {
			fmt.Printf("%s  %s  by %s on %s\n", p.ID, p.Text, p.Name, p.Date.Format("2006-01-02 15:04"))
		}
		return nil

	case "delete-user", "delete-post":
		fs := flag.NewFlagSet("admin "+sub, flag.ExitOnError)
		id := fs.String("id", "", "id to delete")
		fs.Parse(rest)
		if *id == "" {
			return errors.New("-id is required")
		}

		var err error
		if sub == "delete-user" {
			err = v.DeleteUser(ctx, *id)
		} else {
			err = v.DeletePost(ctx, *id)
		}
		if err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil

	default:
		return fmt.Errorf("unknown admin subcommand %q", sub)
	}
}

func printPosts(v *view.Posts) {
	posts := v.Posts()
	if len(posts) == 0 {
		fmt.Println("No posts found")
		return
	}
	for _, p := range posts {
		fmt.Printf("[%s] %s\n  by %s on %s — %d likes\n", p.ID, p.Text, p.Name,
			p.Date.Format("2006-01-02 15:04"), len(p.Likes))
		for _, c := range p.Comments {
			fmt.Printf("    %s (%s)\n", c.Text, c.Name)
		}
	}
}

// formError prefers the form-level message the user would have seen in the
// UI, falling back to the underlying error.
func formError(formMsg string, err error) error {
	if formMsg != "" {
		return fmt.Errorf("%s: %w", formMsg, err)
	}
	return err
}

func orText(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
