package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vilbert55/yatube/internal/model"
)

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.commentRepo, env.postRepo)
	ctx := context.Background()

	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	p := env.post(t, alice, nil, "post", time.Now())

	c, err := svc.Add(ctx, p.ID, bob.ID, "  great post  ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, c.PostID)
	assert.Equal(t, bob.ID, c.AuthorID)
	assert.Equal(t, "great post", c.Text)
	assert.False(t, c.Created.IsZero())
}

func TestAddCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.commentRepo, env.postRepo)
	ctx := context.Background()

	alice := env.user(t, "alice")
	p := env.post(t, alice, nil, "post", time.Now())

	var verr *ValidationError
	_, err := svc.Add(ctx, p.ID, alice.ID, "")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "text")

	_, err = svc.Add(ctx, p.ID, alice.ID, strings.Repeat("и", model.CommentTextMaxLen+1))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "text")

	// 上限按字符数算，多字节文本不吃亏
	_, err = svc.Add(ctx, p.ID, alice.ID, strings.Repeat("и", model.CommentTextMaxLen))
	assert.NoError(t, err)
}

func TestAddCommentUnknownPost(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCommentService(env.commentRepo, env.postRepo)
	ctx := context.Background()
	alice := env.user(t, "alice")

	_, err := svc.Add(ctx, "ghost", alice.ID, "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}
