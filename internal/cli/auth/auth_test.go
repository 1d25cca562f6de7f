package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()

	_, err := Default.LoadToken()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, Default.SaveToken("first"))
	require.NoError(t, Default.SaveToken("second"))

	token, err := Default.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, Default.DeleteToken())
	_, err = Default.LoadToken()
	assert.ErrorIs(t, err, ErrNoToken)

	// Deleting twice is not an error
	assert.NoError(t, Default.DeleteToken())
}
