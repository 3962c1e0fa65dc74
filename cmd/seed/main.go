// Seeds a development database with a handful of fake users, friendships,
// conversations and statuses. Not for production use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/talkline/talkline/internal/auth"
	"github.com/talkline/talkline/internal/domain"
	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/lib/logger/sl"
)

func main() {
	var (
		path  string
		count int
	)
	flag.StringVar(&path, "db", "data/talkline.db", "path to the sqlite database")
	flag.IntVar(&count, "users", 10, "number of fake users to create")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := repository.Open(path)
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	if err := repository.Migrate(db, log); err != nil {
		log.Error("failed to migrate database", sl.Err(err))
		os.Exit(1)
	}

	ctx := context.Background()
	users := repository.NewSqliteUserRepository(db)
	friends := repository.NewSqliteFriendRepository(db)
	messages := repository.NewSqliteMessageRepository(db)
	statuses := repository.NewSqliteStatusRepository(db)

	hash, err := auth.HashPassword("password123")
	if err != nil {
		log.Error("failed to hash seed password", sl.Err(err))
		os.Exit(1)
	}

	created := make([]*domain.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(gofakeit.Username())
		email := fmt.Sprintf("%s@%s", username, gofakeit.DomainName())

		user := domain.NewUser(email, username, hash)
		if i == 0 {
			user.Username = "admin"
			user.Email = "admin@talkline.dev"
			user.IsAdmin = true
		}
		if err := users.Create(ctx, user); err != nil {
			log.Warn("skipping user", slog.String("username", user.Username), sl.Err(err))
			continue
		}
		created = append(created, user)
		log.Info("created user", slog.Int64("id", user.ID), slog.String("username", user.Username))
	}

	// befriend each user with the next two, seeding a small connected graph
	for i, u := range created {
		for j := i + 1; j < len(created) && j <= i+2; j++ {
			other := created[j]
			req := domain.NewFriendRequest(u.ID, other.ID, gofakeit.HackerPhrase())
			if err := friends.CreateRequest(ctx, req); err != nil {
				continue
			}
			if err := friends.AcceptRequest(ctx, req.ID); err != nil {
				log.Warn("failed to accept seed request", sl.Err(err))
				continue
			}

			for k := 0; k < gofakeit.Number(2, 6); k++ {
				sender, receiver := u.ID, other.ID
				if k%2 == 1 {
					sender, receiver = receiver, sender
				}
				if _, err := messages.Save(ctx, domain.NewMessage(sender, receiver, gofakeit.Sentence(8))); err != nil {
					log.Warn("failed to save seed message", sl.Err(err))
				}
			}
		}
	}

	for _, u := range created {
		if gofakeit.Bool() {
			continue
		}
		status := domain.NewStatus(u.ID, domain.StatusTypeText, gofakeit.Quote(), "", domain.DefaultStatusTTL)
		if err := statuses.Create(ctx, status); err != nil {
			log.Warn("failed to create seed status", sl.Err(err))
		}
	}

	log.Info("seeding done", slog.Int("users", len(created)))
}
