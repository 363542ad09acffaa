package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Vilbert55/yatube/internal/model"
	"github.com/Vilbert55/yatube/internal/repository"
)

type testEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
}

func newTestEnv(t testing.TB) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{}))
	return &testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		groupRepo:   repository.NewGroupRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		followRepo:  repository.NewFollowRepository(db),
	}
}

func (e *testEnv) feedService() FeedService {
	return NewFeedService(e.postRepo, e.userRepo, e.groupRepo, e.followRepo)
}

func (e *testEnv) user(t testing.TB, username string) *model.User {
	u := &model.User{ID: uuid.New().String(), Username: username, Email: username + "@example.com", Password: "p"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) group(t testing.TB, slug string) *model.Group {
	g := &model.Group{ID: uuid.New().String(), Title: slug, Slug: &slug, Description: slug}
	require.NoError(t, e.db.Create(g).Error)
	return g
}

func (e *testEnv) post(t testing.TB, author *model.User, group *model.Group, text string, pubDate time.Time) *model.Post {
	p := &model.Post{ID: uuid.New().String(), AuthorID: author.ID, Text: text, PubDate: pubDate}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

func (e *testEnv) comment(t testing.TB, post *model.Post, author *model.User, text string, created time.Time) *model.Comment {
	c := &model.Comment{ID: uuid.New().String(), PostID: post.ID, AuthorID: author.ID, Text: text, Created: created}
	require.NoError(t, e.db.Create(c).Error)
	return c
}
