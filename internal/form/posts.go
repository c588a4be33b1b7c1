package form

import "context"

// Post is the post-composition form: a single required text field. The
// submit function is injected so the form stays decoupled from how the
// feed view patches itself with the created post.
type Post struct {
	Draft
	create func(ctx context.Context, text string) error
}

func NewPost(create func(ctx context.Context, text string) error) *Post {
	return &Post{
		Draft:  newDraft(fieldSpec{name: "text", required: true}),
		create: create,
	}
}

// Submit publishes the draft text and clears it on success.
func (p *Post) Submit(ctx context.Context) error {
	err := p.Draft.submit(ctx, "Error creating post", func(ctx context.Context) error {
		return p.create(ctx, p.Value("text"))
	})
	if err != nil {
		return err
	}
	p.reset()
	return nil
}

// Comment is the comment-composition form attached to one post.
type Comment struct {
	Draft
	postID string
	add    func(ctx context.Context, postID, text string) error
}

func NewComment(postID string, add func(ctx context.Context, postID, text string) error) *Comment {
	return &Comment{
		Draft:  newDraft(fieldSpec{name: "text", required: true}),
		postID: postID,
		add:    add,
	}
}

// Submit adds the comment and clears the draft on success.
func (c *Comment) Submit(ctx context.Context) error {
	err := c.Draft.submit(ctx, "Error adding comment", func(ctx context.Context) error {
		return c.add(ctx, c.postID, c.Value("text"))
	})
	if err != nil {
		return err
	}
	c.reset()
	return nil
}
