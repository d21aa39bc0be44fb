package credential

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	apperrors "school-admin-api/pkg/errors"
)

type countingHasher struct {
	inner Hasher
	calls int
}

func (c *countingHasher) Hash(plaintext string) (string, error) {
	c.calls++
	return c.inner.Hash(plaintext)
}

func (c *countingHasher) Check(plaintext, hash string) bool {
	return c.inner.Check(plaintext, hash)
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("entropy exhausted") }
func (failingHasher) Check(string, string) bool   { return false }

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)
	assert.True(t, h.Check("password1", hash))
	assert.False(t, h.Check("password2", hash))

	other, err := h.Hash("password1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes must be salted")
}

func TestBcryptHasherFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(99).cost)
}

func TestSecretPrepareHashesOnlyWhenChanged(t *testing.T) {
	h := &countingHasher{inner: NewBcryptHasher(bcrypt.MinCost)}

	s := NewSecret("password1")
	assert.True(t, s.Changed())
	require.NoError(t, s.Prepare(h))
	assert.False(t, s.Changed())
	assert.Equal(t, 1, h.calls)

	first := s.Hash()
	require.NoError(t, s.Prepare(h))
	assert.Equal(t, 1, h.calls)
	assert.Equal(t, first, s.Hash())
	assert.True(t, s.Verify(h, "password1"))

	s.Set("password2")
	require.NoError(t, s.Prepare(h))
	assert.Equal(t, 2, h.calls)
	assert.NotEqual(t, first, s.Hash())
}

func TestSecretPrepareFailureKeepsPlaintextUnpersistable(t *testing.T) {
	s := NewSecret("password1")
	err := s.Prepare(failingHasher{})

	var hashErr apperrors.HashingError
	require.ErrorAs(t, err, &hashErr)
	assert.True(t, s.Changed())

	_, err = json.Marshal(s)
	assert.ErrorIs(t, err, apperrors.ErrUnhashedSecret)
	_, _, err = s.MarshalBSONValue()
	assert.ErrorIs(t, err, apperrors.ErrUnhashedSecret)
}

func TestSecretEncodesHashOnly(t *testing.T) {
	type doc struct {
		Password Secret `json:"password" bson:"password"`
	}

	in := doc{Password: FromHash("$2a$04$abc")}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"password":"$2a$04$abc"}`, string(data))

	var out doc
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "$2a$04$abc", out.Password.Hash())
	assert.False(t, out.Password.Changed())

	raw, err := bson.Marshal(in)
	require.NoError(t, err)
	var fromBSON doc
	require.NoError(t, bson.Unmarshal(raw, &fromBSON))
	assert.Equal(t, "$2a$04$abc", fromBSON.Password.Hash())
}
