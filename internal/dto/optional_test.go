package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_AbsentNullAndValue(t *testing.T) {
	type payload struct {
		Due Optional[string] `json:"due_date"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Due.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":null}`), &null))
	assert.True(t, null.Due.Set)
	assert.Nil(t, null.Due.Value)

	var value payload
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2026-09-15"}`), &value))
	assert.True(t, value.Due.Set)
	require.NotNil(t, value.Due.Value)
	assert.Equal(t, "2026-09-15", *value.Due.Value)
}

func TestOptional_InvalidValue(t *testing.T) {
	type payload struct {
		Count Optional[uint64] `json:"count"`
	}

	var p payload
	assert.Error(t, json.Unmarshal([]byte(`{"count":"many"}`), &p))
}
