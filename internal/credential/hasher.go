// Package credential hashes login secrets before they are persisted.
package credential

import (
	"golang.org/x/crypto/bcrypt"

	apperrors "school-admin-api/pkg/errors"
)

const DefaultCost = 12

// Hasher turns a plaintext secret into a salted one-way hash. Check is the
// comparison a login flow would use; this API has no login route yet.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Check(plaintext, hash string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperrors.HashingError{Err: err}
	}
	return string(hash), nil
}

func (h *BcryptHasher) Check(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
