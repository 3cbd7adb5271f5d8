package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironiq/gymtap/internal/models"
)

func TestParseSessionEntry_Full(t *testing.T) {
	entry, err := ParseSessionEntry("last:AB12C3:135x10,135x8")
	require.NoError(t, err)

	assert.Equal(t, models.RoleLastCompleted, entry.Role)
	assert.Equal(t, "AB12C3", entry.SessionID)
	assert.Equal(t, []models.Set{
		{WeightLbs: 135, Reps: 10},
		{WeightLbs: 135, Reps: 8},
	}, entry.Sets)
}

func TestParseSessionEntry_NoSets(t *testing.T) {
	entry, err := ParseSessionEntry("active:AB12C3")
	require.NoError(t, err)

	assert.Equal(t, models.RoleActive, entry.Role)
	assert.NotNil(t, entry.Sets)
	assert.Empty(t, entry.Sets)
}

func TestParseSessionEntry_RoleAliases(t *testing.T) {
	testCases := []struct {
		input string
		want  models.Role
	}{
		{"active:X", models.RoleActive},
		{"b:X", models.RoleActive},
		{"last:X", models.RoleLastCompleted},
		{"completed:X", models.RoleLastCompleted},
		{"c:X", models.RoleLastCompleted},
		{"older:X", models.RoleOlder},
		{"old:X", models.RoleOlder},
		{"d:X", models.RoleOlder},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			entry, err := ParseSessionEntry(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, entry.Role)
		})
	}
}

func TestParseSessionEntry_UnknownWeight(t *testing.T) {
	entry, err := ParseSessionEntry("c:AB12C3:?x12")
	require.NoError(t, err)
	assert.Equal(t, models.WeightUnknown, entry.Sets[0].WeightLbs)
	assert.Equal(t, 12, entry.Sets[0].Reps)
}

func TestParseSessionEntry_Errors(t *testing.T) {
	testCases := []string{
		"",
		"active",
		"active:",
		"wizard:AB12C3",
		"active:AB12C3:135",
		"active:AB12C3:135x",
		"active:AB12C3:135x0",
		"active:AB12C3:135xten",
	}

	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSessionEntry(input)
			assert.Error(t, err)
		})
	}
}

func TestParseSets_TrimsWhitespace(t *testing.T) {
	sets, err := ParseSets("135x10, 145x8")
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, 145, sets[1].WeightLbs)
}
