package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_WireStates(t *testing.T) {
	type payload struct {
		Description Optional[string] `json:"description"`
	}

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{name: "key absent", body: `{}`, wantSet: false},
		{name: "explicit null", body: `{"description":null}`, wantSet: true, wantValue: nil},
		{name: "empty string", body: `{"description":""}`, wantSet: true, wantValue: ptr("")},
		{name: "value", body: `{"description":"notes"}`, wantSet: true, wantValue: ptr("notes")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantSet, p.Description.Set)
			assert.Equal(t, tt.wantValue, p.Description.Value)
		})
	}
}

func TestDateTime_AcceptsBothLayouts(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T23:00:00Z"`), &d))
	assert.Equal(t, "2024-05-01", d.Day())

	var dateOnly DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01"`), &dateOnly))
	assert.Equal(t, "2024-05-01", dateOnly.Day())
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), dateOnly.Time)

	var bad DateTime
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}

func TestDateTime_DayTruncatesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 01:30 on May 2nd local is still May 1st in UTC
	d := NewDateTime(time.Date(2024, 5, 2, 1, 30, 0, 0, loc))
	assert.Equal(t, "2024-05-01", d.Day())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusNew.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusDone.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestUser_PublicStripsHash(t *testing.T) {
	u := User{ID: "u1", Username: "alice", Email: "a@x.com", PasswordHash: "$2a$..."}
	data, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "passwordHash")
	assert.Contains(t, string(data), "alice")
}

func ptr(s string) *string {
	return &s
}
