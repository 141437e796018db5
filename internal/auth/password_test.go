package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, h.Compare(hash, "correct horse battery staple"))
	assert.Error(t, h.Compare(hash, "wrong password"))
}

func TestBcryptCostClamping(t *testing.T) {
	low := NewBcryptPasswordHasherWithCost(-1)
	assert.Equal(t, bcrypt.MinCost, low.cost)

	high := NewBcryptPasswordHasherWithCost(99)
	assert.Equal(t, bcrypt.MaxCost, high.cost)

	inRange := NewBcryptPasswordHasherWithCost(10)
	assert.Equal(t, 10, inRange.cost)
}
