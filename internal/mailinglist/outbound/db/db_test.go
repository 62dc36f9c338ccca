package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/outbound/db"
	"github.com/shandysiswandi/mailinglist/internal/pkg/clock"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mongodb integration test in short mode")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	if err != nil {
		t.Skipf("mongodb container could not start: %v", err)
	}
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	return client.Database("mailinglist_test")
}

func TestDB(t *testing.T) {
	database := setupMongo(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

	t.Run("empty repository", func(t *testing.T) {
		repo := db.NewDB(database, "empty", clock.Fixed(now), instrument.NewNoop())

		user, err := repo.FindUserByEmail(ctx, "any@mail.com")
		require.NoError(t, err)
		assert.Nil(t, user)

		users, err := repo.FindAllUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)

		exists, err := repo.Exists(ctx, entity.UserData{Name: "any_name", Email: "any@mail.com"})
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("add then find", func(t *testing.T) {
		repo := db.NewDB(database, "add", clock.Fixed(now), instrument.NewNoop())

		require.NoError(t, repo.Add(ctx, entity.UserData{Name: "any_name", Email: "any@mail.com"}))
		require.NoError(t, repo.Add(ctx, entity.UserData{Name: "second_user", Email: "any@mail.com"}))
		require.NoError(t, repo.Add(ctx, entity.UserData{Name: "third_user", Email: "third@mail.com"}))

		user, err := repo.FindUserByEmail(ctx, "any@mail.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "any_name", user.Name)

		users, err := repo.FindAllUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []entity.UserData{
			{Name: "any_name", Email: "any@mail.com"},
			{Name: "second_user", Email: "any@mail.com"},
			{Name: "third_user", Email: "third@mail.com"},
		}, users)

		exists, err := repo.Exists(ctx, entity.UserData{Name: "third_user", Email: "third@mail.com"})
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.Exists(ctx, entity.UserData{Name: "third_user", Email: "any@mail.com"})
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("stores the creation time", func(t *testing.T) {
		repo := db.NewDB(database, "created", clock.Fixed(now), instrument.NewNoop())
		require.NoError(t, repo.Add(ctx, entity.UserData{Name: "any_name", Email: "any@mail.com"}))

		var doc bson.M
		require.NoError(t, database.Collection("created").FindOne(ctx, bson.D{}).Decode(&doc))
		createdAt, ok := doc["created_at"].(bson.DateTime)
		require.True(t, ok)
		assert.True(t, now.Equal(createdAt.Time()))
	})

	t.Run("ping", func(t *testing.T) {
		repo := db.NewDB(database, "", clock.Fixed(now), instrument.NewNoop())
		assert.NoError(t, repo.Ping(ctx))
	})
}
