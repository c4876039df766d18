// Seeder for development environments: fills the remote store with fake
// confessions so the feed has something to show.
package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/confessd-dev/confessd/internal/identity"
	"github.com/confessd-dev/confessd/internal/storage"
	"github.com/confessd-dev/confessd/internal/storage/pg"
	"github.com/confessd-dev/confessd/shared/config"
	"github.com/confessd-dev/confessd/shared/domain"
	"github.com/confessd-dev/confessd/shared/logger"
)

func main() {
	var configFolder string
	var count int
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.IntVar(&count, "count", 50, "number of confessions to insert")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	remote, err := pg.New(cfg)
	if err != nil {
		logger.Log.Error("failed to connect to db", "error", err)
		return
	}
	defer remote.Cleanup()

	ctx := context.Background()
	for i := 0; i < count; i++ {
		author := &domain.Identity{
			Id:       uuid.NewString(),
			Nickname: identity.Nicknames[rand.Intn(len(identity.Nicknames))],
			Color:    identity.Colors[rand.Intn(len(identity.Colors))],
		}
		tag := domain.Tags[rand.Intn(len(domain.Tags))]

		record := storage.NewRawPost(fakeConfession(), tag, author)
		record.Reactions = fakeTally()

		created, err := remote.Insert(ctx, record)
		if err != nil {
			logger.Log.Error("insert failed", "error", err)
			return
		}
		logger.Log.Info("seeded confession", "id", created.Id, "tag", tag)
	}
}

// fakeConfession produces a body within the 5..400 character bounds.
func fakeConfession() string {
	text := gofakeit.Sentence(rand.Intn(30) + 3)
	runes := []rune(text)
	if len(runes) > domain.MaxBodyLen {
		runes = runes[:domain.MaxBodyLen]
	}
	return string(runes)
}

func fakeTally() domain.Tally {
	tally := domain.ZeroTally()
	for _, kind := range domain.ReactionKinds {
		tally[kind] = int64(rand.Intn(20))
	}
	return tally
}
