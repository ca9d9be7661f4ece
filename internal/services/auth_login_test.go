package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

func TestLoginHashesForUnknownEmails(t *testing.T) {
	s, err := NewAuthService(repos.NewUserRepo(), AuthConfig{AdminSecret: "s", BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	_, err = s.Signup(domain.CustomerSignup{Email: "known@example.com", Password: "password1"})
	require.NoError(t, err)

	var hashes [][]byte
	s.compare = func(hash, password []byte) error {
		hashes = append(hashes, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	_, err = s.Login("unknown@example.com", "password1")
	assert.ErrorIs(t, err, ErrBadCreds)
	require.Len(t, hashes, 1, "unknown emails still pay for one bcrypt comparison")
	assert.Equal(t, s.dummyHash, hashes[0])
	cost, err := bcrypt.Cost(hashes[0])
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	_, err = s.Login("known@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrBadCreds)
	assert.Len(t, hashes, 2)
	assert.NotEqual(t, s.dummyHash, hashes[1])
}
