package db

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-admin-api/internal/credential"
)

type record struct {
	ID      string   `json:"_id" bson:"_id"`
	Name    string   `json:"name" bson:"name"`
	Level   int      `json:"level" bson:"level"`
	Courses []string `json:"courses" bson:"courses"`
}

type account struct {
	ID       string            `json:"_id" bson:"_id"`
	Password credential.Secret `json:"password" bson:"password"`
}

func seed(t *testing.T, c Collection, recs ...record) {
	t.Helper()
	for _, r := range recs {
		require.NoError(t, c.InsertOne(context.Background(), r))
	}
}

// uniqueCollection returns a collection no other test touches. The name is a
// valid MySQL identifier.
func uniqueCollection(database Database) Collection {
	return database.Collection("c_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// runCollectionSuite checks the behaviour every backend must share.
func runCollectionSuite(t *testing.T, database Database) {
	t.Run("InsertAndFind", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		seed(t, c,
			record{ID: "s1", Name: "Ann", Level: 1, Courses: []string{"CS101"}},
			record{ID: "s2", Name: "Bob", Level: 2, Courses: []string{"CS101", "BIO1"}},
			record{ID: "s3", Name: "Cid", Level: 2, Courses: []string{}},
		)

		var all []record
		require.NoError(t, c.Find(ctx, Filter{}, &all))
		assert.Len(t, all, 3)

		var level2 []record
		require.NoError(t, c.Find(ctx, Filter{"level": 2}, &level2))
		assert.Len(t, level2, 2)

		var one record
		require.NoError(t, c.FindOne(ctx, Filter{"name": "Bob"}, &one))
		assert.Equal(t, "s2", one.ID)
		assert.Equal(t, []string{"CS101", "BIO1"}, one.Courses)

		err := c.FindOne(ctx, Filter{"name": "Nobody"}, &one)
		assert.ErrorIs(t, err, ErrNoDocuments)
	})

	t.Run("FindOnMissingCollection", func(t *testing.T) {
		var out []record
		require.NoError(t, uniqueCollection(database).Find(context.Background(), Filter{}, &out))
		assert.Empty(t, out)
	})

	t.Run("ArrayMembershipFilter", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		seed(t, c,
			record{ID: "s1", Courses: []string{"CS101"}},
			record{ID: "s2", Courses: []string{"CS101", "BIO1"}},
			record{ID: "s3", Courses: []string{"BIO1"}},
		)

		var out []record
		require.NoError(t, c.Find(ctx, Filter{"courses": "CS101"}, &out))
		require.Len(t, out, 2)
		assert.Equal(t, "s1", out[0].ID)
		assert.Equal(t, "s2", out[1].ID)
	})

	t.Run("DuplicateKey", func(t *testing.T) {
		c := uniqueCollection(database)
		seed(t, c, record{ID: "s1"})

		err := c.InsertOne(context.Background(), record{ID: "s1", Name: "again"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("InsertWithoutID", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		err := c.InsertOne(ctx, record{Name: "anon"})
		assert.ErrorIs(t, err, ErrMissingID)

		var out []record
		require.NoError(t, c.Find(ctx, Filter{}, &out))
		assert.Empty(t, out)
	})

	t.Run("UpdateOne", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		seed(t, c, record{ID: "s1", Name: "Ann", Level: 1})

		res, err := c.UpdateOne(ctx, Filter{"_id": "s1"}, Document{"name": "Anne", "level": 3})
		require.NoError(t, err)
		assert.Equal(t, UpdateResult{Matched: 1, Modified: 1}, res)

		var got record
		require.NoError(t, c.FindOne(ctx, Filter{"_id": "s1"}, &got))
		assert.Equal(t, "Anne", got.Name)
		assert.Equal(t, 3, got.Level)

		res, err = c.UpdateOne(ctx, Filter{"_id": "s1"}, Document{"name": "Anne"})
		require.NoError(t, err)
		assert.Equal(t, UpdateResult{Matched: 1, Modified: 0}, res)

		res, err = c.UpdateOne(ctx, Filter{"_id": "missing"}, Document{"name": "x"})
		require.NoError(t, err)
		assert.Equal(t, UpdateResult{}, res)
	})

	t.Run("UpdateOneSecret", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		require.NoError(t, c.InsertOne(ctx, account{ID: "t1", Password: credential.FromHash("hash-1")}))

		res, err := c.UpdateOne(ctx, Filter{"_id": "t1"}, Document{"password": credential.FromHash("hash-2")})
		require.NoError(t, err)
		assert.Equal(t, UpdateResult{Matched: 1, Modified: 1}, res)

		var got account
		require.NoError(t, c.FindOne(ctx, Filter{"_id": "t1"}, &got))
		assert.Equal(t, "hash-2", got.Password.Hash())
		assert.False(t, got.Password.Changed())

		_, err = c.UpdateOne(ctx, Filter{"_id": "t1"}, Document{"password": *credential.NewSecret("plain")})
		assert.Error(t, err)

		require.NoError(t, c.FindOne(ctx, Filter{"_id": "t1"}, &got))
		assert.Equal(t, "hash-2", got.Password.Hash())
	})

	t.Run("InsertUnhashedSecret", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		err := c.InsertOne(ctx, account{ID: "t1", Password: *credential.NewSecret("plain")})
		assert.Error(t, err)

		var out []account
		require.NoError(t, c.Find(ctx, Filter{}, &out))
		assert.Empty(t, out)
	})

	t.Run("ReplaceOne", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		seed(t, c, record{ID: "s1", Name: "Ann", Courses: []string{"CS101"}})

		require.NoError(t, c.ReplaceOne(ctx, Filter{"_id": "s1"}, record{ID: "s1", Name: "Ann", Courses: []string{"CS101", "IT2"}}))

		var got record
		require.NoError(t, c.FindOne(ctx, Filter{"_id": "s1"}, &got))
		assert.Equal(t, []string{"CS101", "IT2"}, got.Courses)

		err := c.ReplaceOne(ctx, Filter{"_id": "nope"}, record{ID: "nope"})
		assert.ErrorIs(t, err, ErrNoDocuments)
	})

	t.Run("Pull", func(t *testing.T) {
		tests := []struct {
			name     string
			courses  []string
			want     []string
			modified int64
		}{
			{name: "absent", courses: []string{"BIO1"}, want: []string{"BIO1"}, modified: 0},
			{name: "single", courses: []string{"CS101", "BIO1"}, want: []string{"BIO1"}, modified: 1},
			{name: "repeated", courses: []string{"CS101", "BIO1", "CS101"}, want: []string{"BIO1"}, modified: 1},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctx := context.Background()
				c := uniqueCollection(database)
				seed(t, c, record{ID: "s1", Courses: tt.courses})

				res, err := c.Pull(ctx, Filter{"_id": "s1"}, "courses", "CS101")
				require.NoError(t, err)
				assert.Equal(t, int64(1), res.Matched)
				assert.Equal(t, tt.modified, res.Modified)

				var got record
				require.NoError(t, c.FindOne(ctx, Filter{"_id": "s1"}, &got))
				assert.Equal(t, tt.want, got.Courses)
			})
		}
	})

	t.Run("PullNoMatch", func(t *testing.T) {
		res, err := uniqueCollection(database).Pull(context.Background(), Filter{"_id": "none"}, "courses", "CS101")
		require.NoError(t, err)
		assert.Equal(t, UpdateResult{}, res)
	})

	t.Run("DeleteOne", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		seed(t, c,
			record{ID: "s1", Name: "Ann"},
			record{ID: "s2", Name: "Bob", Level: 4, Courses: []string{"CS101"}},
		)

		var deleted record
		require.NoError(t, c.DeleteOne(ctx, Filter{"name": "Bob"}, &deleted))
		assert.Equal(t, record{ID: "s2", Name: "Bob", Level: 4, Courses: []string{"CS101"}}, deleted)

		var rest []record
		require.NoError(t, c.Find(ctx, Filter{}, &rest))
		require.Len(t, rest, 1)
		assert.Equal(t, "s1", rest[0].ID)

		err := c.DeleteOne(ctx, Filter{"name": "Bob"}, nil)
		assert.ErrorIs(t, err, ErrNoDocuments)

		require.NoError(t, c.DeleteOne(ctx, Filter{"_id": "s1"}, nil))
	})

	t.Run("DeleteOneSecret", func(t *testing.T) {
		ctx := context.Background()
		c := uniqueCollection(database)
		require.NoError(t, c.InsertOne(ctx, account{ID: "t1", Password: credential.FromHash("hash-1")}))

		var deleted account
		require.NoError(t, c.DeleteOne(ctx, Filter{"_id": "t1"}, &deleted))
		assert.Equal(t, "hash-1", deleted.Password.Hash())
	})
}
