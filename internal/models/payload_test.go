package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_CompactForm(t *testing.T) {
	data, err := json.Marshal(Set{WeightLbs: 135, Reps: 10})
	require.NoError(t, err)
	assert.JSONEq(t, `[135,10]`, string(data))

	var set Set
	require.NoError(t, json.Unmarshal([]byte(`[-1,8]`), &set))
	assert.Equal(t, WeightUnknown, set.WeightLbs)
	assert.Equal(t, 8, set.Reps)
}

func TestSet_RejectsWrongArity(t *testing.T) {
	var set Set
	assert.Error(t, json.Unmarshal([]byte(`[135]`), &set))
	assert.Error(t, json.Unmarshal([]byte(`[135,10,3]`), &set))
	assert.Error(t, json.Unmarshal([]byte(`{"weight":135}`), &set))
}

func TestSessionEntry_CompactForm(t *testing.T) {
	entry := SessionEntry{
		Role:      RoleLastCompleted,
		SessionID: "AB12C3",
		Sets:      []Set{{WeightLbs: 135, Reps: 10}, {WeightLbs: 135, Reps: 8}},
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `["c","AB12C3",[[135,10],[135,8]]]`, string(data))

	var decoded SessionEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entry, decoded)
}

func TestSessionEntry_NilSetsMarshalsAsEmptyArray(t *testing.T) {
	data, err := json.Marshal(SessionEntry{Role: RoleActive, SessionID: "AB12C3"})
	require.NoError(t, err)
	assert.JSONEq(t, `["b","AB12C3",[]]`, string(data))
}

func TestSessionEntry_RejectsUnknownRole(t *testing.T) {
	var entry SessionEntry
	err := json.Unmarshal([]byte(`["x","AB12C3",[]]`), &entry)
	assert.Error(t, err)
}

func TestCompactPayload_Equal(t *testing.T) {
	a := &CompactPayload{
		MachineID:     "M1",
		MachineType:   "leg-press",
		NextSessionID: "AB12C3",
		Sessions: []SessionEntry{
			{Role: RoleActive, SessionID: "AB12C3", Sets: []Set{}},
		},
	}
	b := &CompactPayload{
		MachineID:     "M1",
		MachineType:   "leg-press",
		NextSessionID: "AB12C3",
		Sessions: []SessionEntry{
			{Role: RoleActive, SessionID: "AB12C3", Sets: []Set{}},
		},
	}

	assert.True(t, a.Equal(b))

	b.NextSessionID = "XYZ999"
	assert.False(t, a.Equal(b))

	assert.False(t, a.Equal(nil))
	assert.False(t, (*CompactPayload)(nil).Equal(a))
}
