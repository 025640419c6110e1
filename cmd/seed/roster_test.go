package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoster(t *testing.T) {
	r, err := parseRoster([]byte(`
users:
  - name: Rahul
    claims: 3
  - name: Kamal
`))
	require.NoError(t, err)
	require.Len(t, r.Users, 2)
	assert.Equal(t, rosterEntry{Name: "Rahul", Claims: 3}, r.Users[0])
	assert.Zero(t, r.Users[1].Claims)
}

func TestParseRosterErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"blank name", "users:\n  - name: ' '\n"},
		{"negative claims", "users:\n  - name: A\n    claims: -1\n"},
		{"too many claims", "users:\n  - name: A\n    claims: 1000\n"},
		{"unknown field", "users:\n  - name: A\n    points: 5\n"},
		{"not yaml", "users: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRoster([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadRosterSample(t *testing.T) {
	r, err := loadRoster("roster.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, r.Users)
}
