package credential

import (
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	apperrors "school-admin-api/pkg/errors"
)

// Secret is a stored credential. It encodes as its hash only. Set records a
// new plaintext and raises the changed flag; Prepare replaces it with a hash.
// Encoding a Secret whose plaintext was never hashed fails.
type Secret struct {
	hash    string
	plain   string
	changed bool
}

func NewSecret(plaintext string) *Secret {
	s := &Secret{}
	s.Set(plaintext)
	return s
}

// FromHash wraps an already persisted hash.
func FromHash(hash string) Secret {
	return Secret{hash: hash}
}

func (s *Secret) Set(plaintext string) {
	s.plain = plaintext
	s.changed = true
}

func (s Secret) Changed() bool {
	return s.changed
}

func (s Secret) Hash() string {
	return s.hash
}

func (s Secret) IsZero() bool {
	return s.hash == "" && !s.changed
}

// Prepare hashes a pending plaintext. It is a no-op when nothing changed
// since the secret was loaded or last prepared.
func (s *Secret) Prepare(h Hasher) error {
	if !s.changed {
		return nil
	}

	hash, err := h.Hash(s.plain)
	if err != nil {
		var hashErr apperrors.HashingError
		if errors.As(err, &hashErr) {
			return err
		}
		return apperrors.HashingError{Err: err}
	}

	s.hash = hash
	s.plain = ""
	s.changed = false
	return nil
}

// Verify reports whether plaintext matches the stored hash. It exists for
// credential checks by a future login route and is not called by the API.
func (s Secret) Verify(h Hasher, plaintext string) bool {
	if s.hash == "" {
		return false
	}
	return h.Check(plaintext, s.hash)
}

func (s Secret) MarshalJSON() ([]byte, error) {
	if s.changed {
		return nil, apperrors.ErrUnhashedSecret
	}
	return json.Marshal(s.hash)
}

func (s *Secret) UnmarshalJSON(data []byte) error {
	var hash *string
	if err := json.Unmarshal(data, &hash); err != nil {
		return err
	}
	*s = Secret{}
	if hash != nil {
		s.hash = *hash
	}
	return nil
}

func (s Secret) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s.changed {
		return 0, nil, apperrors.ErrUnhashedSecret
	}
	return bson.MarshalValue(s.hash)
}

func (s *Secret) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*s = Secret{}
	if t == bsontype.Null || t == bsontype.Undefined {
		return nil
	}
	raw := bson.RawValue{Type: t, Value: data}
	hash, ok := raw.StringValueOK()
	if !ok {
		return errors.New("credential: stored secret is not a string")
	}
	s.hash = hash
	return nil
}
