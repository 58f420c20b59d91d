package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenKey(t *testing.T) {
	key, err := GenerateTokenKey()
	require.NoError(t, err)
	assert.Len(t, key, 40)

	_, err = hex.DecodeString(key)
	assert.NoError(t, err)

	other, err := GenerateTokenKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}
