package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vilbert55/yatube/config"
	"github.com/Vilbert55/yatube/internal/model"
	"github.com/Vilbert55/yatube/internal/repository"
	"github.com/Vilbert55/yatube/pkg/database"
	"github.com/Vilbert55/yatube/pkg/logger"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

// 造演示数据：USERS 个用户、两个分组、每人 POSTS 帖，相邻用户互关
func main() {
	cfg := must(config.Load())
	_ = logger.Init(cfg.Log.Level)
	db := must(database.InitDB(cfg))

	users := 10
	if s := os.Getenv("USERS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			users = n
		}
	}
	postsPer := 3
	if s := os.Getenv("POSTS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			postsPer = n
		}
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)

	hash := string(must(bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)))

	slugCats, slugRandom := "cats", "random"
	groups := []*model.Group{
		{ID: uuid.New().String(), Title: "Cats", Slug: &slugCats, Description: "котики"},
		{ID: uuid.New().String(), Title: "Random", Slug: &slugRandom, Description: "обо всём"},
	}
	for _, g := range groups {
		_ = groupRepo.Create(ctx, g)
	}

	ids := make([]string, users)
	for i := 0; i < users; i++ {
		u := &model.User{
			ID:       uuid.New().String(),
			Username: fmt.Sprintf("user%03d", i),
			Email:    fmt.Sprintf("user%03d@example.com", i),
			Password: hash,
		}
		must(0, userRepo.Create(ctx, u))
		ids[i] = u.ID

		for j := 0; j < postsPer; j++ {
			// 偶数帖进分组，奇数帖散帖；分组轮换
			var gid *string
			if j%2 == 0 {
				gid = &groups[(j/2)%len(groups)].ID
			}
			p := &model.Post{
				ID:       uuid.New().String(),
				AuthorID: u.ID,
				GroupID:  gid,
				Text:     fmt.Sprintf("post %d by %s", j, u.Username),
				PubDate:  time.Now().Add(-time.Duration(j) * time.Minute),
			}
			must(0, postRepo.Create(ctx, p))
		}
	}
	for i := range ids {
		must(0, followRepo.Create(ctx, ids[i], ids[(i+1)%len(ids)]))
	}
	fmt.Printf("seeded %d users, %d groups, %d posts\n", users, len(groups), users*postsPer)
}
