package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shinyyama/leaderboard-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshot(t *testing.T) {
	at := time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)
	data, err := buildSnapshot([]model.LeaderboardEntry{
		{UserID: "b", Name: "B", TotalPoints: 9, Rank: 1},
		{UserID: "a", Name: "A", TotalPoints: 2, Rank: 2},
	}, at)
	require.NoError(t, err)

	var got snapshot
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "2026-10-19T15:04:05Z", got.GeneratedAt)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, snapshotEntry{Rank: 1, UserID: "b", Name: "B", TotalPoints: 9}, got.Entries[0])
}

func TestBuildSnapshotEmpty(t *testing.T) {
	data, err := buildSnapshot(nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries": []`)
}

func TestObjectPaths(t *testing.T) {
	at := time.Date(2026, 10, 19, 15, 4, 5, 0, time.FixedZone("IST", 19800))
	paths := objectPaths("leaderboards", at)
	assert.Equal(t, []string{
		"leaderboards/20261019T093405Z.json",
		"leaderboards/latest.json",
	}, paths)
	assert.NotContains(t, paths[0], ":")

	parsed, err := time.Parse(snapshotLayout, "20261019T093405Z")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))
}
