package db

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"school-admin-api/internal/config"
)

// Set MONGO_URI to run against a live server, e.g. mongodb://localhost:27017.
func TestMongoCollection(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx := context.Background()
	database, err := OpenMongo(ctx, config.MongoConfig{
		URI:            uri,
		Name:           "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.(*mongoDatabase).db.Drop(ctx)
		database.Close(ctx)
	})

	runCollectionSuite(t, database)
}
