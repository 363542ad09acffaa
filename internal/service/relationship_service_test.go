package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vilbert55/yatube/internal/model"
)

func TestFollowRejectsSelf(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.followRepo)
	ctx := context.Background()

	a := env.user(t, "alice")
	err := svc.Follow(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, ErrFollowSelf)

	var cnt int64
	require.NoError(t, env.db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestFollowThenRefollowKeepsOneEdge(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.followRepo)
	ctx := context.Background()

	a := env.user(t, "alice")
	b := env.user(t, "bob")

	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))
	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))

	var cnt int64
	require.NoError(t, env.db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestUnfollowTwiceLeavesZeroEdgesNoError(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.followRepo)
	ctx := context.Background()

	a := env.user(t, "alice")
	b := env.user(t, "bob")
	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))

	require.NoError(t, svc.Unfollow(ctx, a.ID, b.ID))
	require.NoError(t, svc.Unfollow(ctx, a.ID, b.ID))

	var cnt int64
	require.NoError(t, env.db.Model(&model.Follow{}).Count(&cnt).Error)
	assert.Zero(t, cnt)
}

func TestIsFollowingOnlyReflectsState(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRelationshipService(env.followRepo)
	ctx := context.Background()

	a := env.user(t, "alice")
	b := env.user(t, "bob")

	got, err := svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, got)

	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))
	got, err = svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, got)
}
