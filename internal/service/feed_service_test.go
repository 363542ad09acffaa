package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vilbert55/yatube/internal/repository"
)

func TestNormalizeOrder(t *testing.T) {
	assert.Equal(t, repository.OrderPubDate, NormalizeOrder(""))
	assert.Equal(t, repository.OrderPubDate, NormalizeOrder("-pub_date"))
	assert.Equal(t, repository.OrderPubDate, NormalizeOrder("comments"))
	assert.Equal(t, repository.OrderPubDate, NormalizeOrder("pub_date ASC; DROP TABLE posts"))
	assert.Equal(t, repository.OrderComments, NormalizeOrder("-comments_count"))
}

func TestIndexPaginationPageSizeFive(t *testing.T) {
	env := newTestEnv(t)
	svc := env.feedService()
	ctx := context.Background()

	alice := env.user(t, "alice")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		env.post(t, alice, nil, fmt.Sprintf("post %02d", i), base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := svc.Index(ctx, "1", "")
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 5)
	assert.Equal(t, 3, page1.Page.NumPages)
	assert.Equal(t, "post 11", page1.Posts[0].Text) // 最新在前

	page3, err := svc.Index(ctx, "3", "")
	require.NoError(t, err)
	assert.Len(t, page3.Posts, 2) // 末页可以不满

	// 越界与非法页码收敛，不报错
	over, err := svc.Index(ctx, "42", "")
	require.NoError(t, err)
	assert.Equal(t, 3, over.Page.Number)
	assert.Len(t, over.Posts, 2)

	bad, err := svc.Index(ctx, "abc", "")
	require.NoError(t, err)
	assert.Equal(t, 1, bad.Page.Number)

	zero, err := svc.Index(ctx, "0", "")
	require.NoError(t, err)
	assert.Equal(t, 1, zero.Page.Number)
}

func TestIndexOrderByCommentCount(t *testing.T) {
	env := newTestEnv(t)
	svc := env.feedService()
	ctx := context.Background()

	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	quiet := env.post(t, alice, nil, "quiet but newer", base.Add(time.Hour))
	busy := env.post(t, alice, nil, "busy but older", base)
	for i := 0; i < 3; i++ {
		env.comment(t, busy, bob, "c", base.Add(time.Duration(i)*time.Second))
	}

	byTime, err := svc.Index(ctx, "1", "")
	require.NoError(t, err)
	assert.Equal(t, quiet.ID, byTime.Posts[0].ID)

	byComments, err := svc.Index(ctx, "1", "-comments_count")
	require.NoError(t, err)
	assert.Equal(t, busy.ID, byComments.Posts[0].ID)
	assert.Equal(t, int64(3), byComments.Posts[0].CommentsCount)
}

func TestGroupFeed(t *testing.T) {
	env := newTestEnv(t)
	svc := env.feedService()
	ctx := context.Background()

	alice := env.user(t, "alice")
	cats := env.group(t, "cats")
	env.post(t, alice, cats, "in cats", time.Now())
	env.post(t, alice, nil, "global only", time.Now())

	view, err := svc.Group(ctx, "cats", "1", "")
	require.NoError(t, err)
	assert.Equal(t, "cats", *view.Group.Slug)
	require.Len(t, view.Feed.Posts, 1)
	assert.Equal(t, "in cats", view.Feed.Posts[0].Text)

	// 未知 slug 是 404，不是空流
	_, err = svc.Group(ctx, "nope", "1", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := env.feedService()
	ctx := context.Background()

	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	env.post(t, alice, nil, "a1", time.Now())
	env.post(t, alice, nil, "a2", time.Now())
	env.post(t, bob, nil, "b1", time.Now())

	view, err := svc.Profile(ctx, "alice", "1", "", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.PostCount)
	assert.False(t, view.Following)
	assert.Len(t, view.Feed.Posts, 2)

	require.NoError(t, env.followRepo.Create(ctx, bob.ID, alice.ID))
	view, err = svc.Profile(ctx, "alice", "1", "", bob.ID)
	require.NoError(t, err)
	assert.True(t, view.Following)

	// 匿名观察者 following 恒为 false
	anon, err := svc.Profile(ctx, "alice", "1", "", "")
	require.NoError(t, err)
	assert.False(t, anon.Following)

	_, err = svc.Profile(ctx, "ghost", "1", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowingFeed(t *testing.T) {
	env := newTestEnv(t)
	svc := env.feedService()
	ctx := context.Background()

	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	env.post(t, alice, nil, "from alice", time.Now())
	env.post(t, carol, nil, "from carol", time.Now())

	// bob 谁也没关注：空流而不是全站
	feed, err := svc.Following(ctx, bob.ID, "1", "")
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
	assert.Equal(t, 1, feed.Page.NumPages)

	require.NoError(t, env.followRepo.Create(ctx, bob.ID, alice.ID))
	feed, err = svc.Following(ctx, bob.ID, "1", "")
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "from alice", feed.Posts[0].Text)

	require.NoError(t, env.followRepo.Delete(ctx, bob.ID, alice.ID))
	feed, err = svc.Following(ctx, bob.ID, "1", "")
	require.NoError(t, err)
	assert.Empty(t, feed.Posts)
}
