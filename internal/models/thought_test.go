package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_MarshalJSON(t *testing.T) {
	t.Parallel()

	ts := Timestamp{Time: time.Date(2024, time.March, 5, 15, 4, 0, 0, time.UTC)}
	raw, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"Mar 5, 2024 at 3:04pm"`, string(raw))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("display format round-trips", func(t *testing.T) {
		t.Parallel()
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"Mar 5, 2024 at 3:04pm"`), &ts))
		assert.Equal(t, 2024, ts.Year())
		assert.Equal(t, time.March, ts.Month())
		assert.Equal(t, 15, ts.Hour())
		assert.Equal(t, 4, ts.Minute())
	})

	t.Run("RFC3339 accepted", func(t *testing.T) {
		t.Parallel()
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T15:04:05Z"`), &ts))
		assert.Equal(t, 5, ts.Second())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		t.Parallel()
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"yesterday-ish"`), &ts))
	})
}

func TestTimestamp_Scan(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	t.Run("time.Time", func(t *testing.T) {
		t.Parallel()
		var ts Timestamp
		require.NoError(t, ts.Scan(now))
		assert.True(t, ts.Equal(now))
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()
		var ts Timestamp
		require.NoError(t, ts.Scan("2024-03-05 15:04:05"))
		assert.Equal(t, 2024, ts.Year())
	})

	t.Run("nil clears", func(t *testing.T) {
		t.Parallel()
		var ts Timestamp
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		t.Parallel()
		var ts Timestamp
		assert.Error(t, ts.Scan(42))
	})
}

func TestReactionList_Remove(t *testing.T) {
	t.Parallel()

	list := ReactionList{
		{ReactionID: "a", ReactionBody: "first"},
		{ReactionID: "b", ReactionBody: "second"},
	}

	got, removed := list.Remove("a")
	assert.True(t, removed)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ReactionID)

	got, removed = got.Remove("missing")
	assert.False(t, removed)
	assert.Len(t, got, 1)
}

func TestThought_JSONShape(t *testing.T) {
	t.Parallel()

	thought := Thought{
		ID:          1,
		ThoughtText: "hello there",
		Username:    "ada",
		Reactions: ReactionList{
			{ReactionID: "r1", ReactionBody: "nice", Username: "grace", CreatedAt: Now()},
		},
		CreatedAt:     Now(),
		ReactionCount: 1,
	}

	raw, err := json.Marshal(thought)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "thoughtText")
	assert.Contains(t, decoded, "username")
	assert.Contains(t, decoded, "reactions")
	assert.Contains(t, decoded, "reactionCount")
	assert.Contains(t, decoded, "createdAt")
	assert.NotContains(t, decoded, "UpdatedAt")

	reactions := decoded["reactions"].([]any)
	reaction := reactions[0].(map[string]any)
	assert.Contains(t, reaction, "reactionId")
	assert.Contains(t, reaction, "reactionBody")
}

func TestUser_JSONShape(t *testing.T) {
	t.Parallel()

	user := User{
		ID:          1,
		Username:    "ada",
		Email:       "ada@example.com",
		ThoughtIDs:  IDList{10, 11},
		FriendIDs:   IDList{2},
		FriendCount: 1,
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "username")
	assert.Contains(t, decoded, "email")
	assert.Contains(t, decoded, "thoughts")
	assert.Contains(t, decoded, "friends")
	assert.Contains(t, decoded, "friendCount")
}

func TestUser_CacheRoundTrip(t *testing.T) {
	t.Parallel()

	user := User{
		ID:         7,
		Username:   "ada",
		Email:      "ada@example.com",
		ThoughtIDs: IDList{10, 11},
		FriendIDs:  IDList{2, 3},
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var decoded User
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, user.ThoughtIDs, decoded.ThoughtIDs)
	assert.Equal(t, user.FriendIDs, decoded.FriendIDs)
}

func TestUserView_PopulatedShape(t *testing.T) {
	t.Parallel()

	user := User{ID: 1, Username: "ada", FriendIDs: IDList{2}}
	view := NewUserView(user, nil, []User{{ID: 2, Username: "grace"}})

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// View fields shadow the raw reference lists.
	thoughts := decoded["thoughts"].([]any)
	assert.Empty(t, thoughts)

	friends := decoded["friends"].([]any)
	require.Len(t, friends, 1)
	friend := friends[0].(map[string]any)
	assert.Equal(t, "grace", friend["username"])

	assert.Equal(t, float64(1), decoded["friendCount"])
}
