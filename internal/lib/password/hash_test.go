package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chops-club/membership-dashboard/internal/lib/password"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := password.GetHash("club-secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, password.CompareHash(hash, "club-secret"))
	assert.Error(t, password.CompareHash(hash, "wrong-password"))
}

func TestCompareHash_InvalidHash(t *testing.T) {
	assert.Error(t, password.CompareHash("not-a-bcrypt-hash", "anything"))
}
