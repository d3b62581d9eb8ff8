package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"array", `{"tags": ["climate", " housing "]}`, []string{"climate", "housing"}},
		{"comma string", `{"tags": "a, b ,,c"}`, []string{"a", "b", "c"}},
		{"empty string", `{"tags": ""}`, []string{}},
		{"null", `{"tags": null}`, []string{}},
		{"array keeps order", `{"tags": ["z", "a", ""]}`, []string{"z", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ProtestRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, []string(req.Tags))
		})
	}

	t.Run("absent", func(t *testing.T) {
		var req ProtestRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
		assert.Nil(t, req.Tags)
	})

	t.Run("wrong type", func(t *testing.T) {
		var req ProtestRequest
		assert.Error(t, json.Unmarshal([]byte(`{"tags": 5}`), &req))
	})
}

func TestEstimateAttendees(t *testing.T) {
	assert.Equal(t, 0, EstimateAttendees(0))
	assert.Equal(t, 3, EstimateAttendees(1))
	assert.Equal(t, 10, EstimateAttendees(3))
	assert.Equal(t, 350, EstimateAttendees(100))
}

func TestProtest_Normalize(t *testing.T) {
	p := &Protest{Likes: 4}
	p.Normalize()

	assert.Equal(t, []string{}, p.Tags)
	assert.Equal(t, 14, p.Attendees)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tags":[]`)
}

func TestOrganizer_PublicHidesDigest(t *testing.T) {
	o := &Organizer{ID: 1, Name: "A", Email: "a@example.com", PasswordHash: "$2a$secret"}

	full, err := json.Marshal(o)
	require.NoError(t, err)
	assert.NotContains(t, string(full), "secret")

	pub, err := json.Marshal(o.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(pub), "secret")
	assert.Contains(t, string(pub), `"email":"a@example.com"`)
}
