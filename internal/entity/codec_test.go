package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func postDescriptor(t *testing.T) Descriptor {
	t.Helper()
	d, ok := ParseKind("Post")
	require.True(t, ok)
	return d
}

func TestPostCodecRoundTrip(t *testing.T) {
	d := postDescriptor(t)

	wire := map[string]any{
		"title":    "hello",
		"tags":     []any{"学习", "焦虑"},
		"liked_by": []any{"a@example.com", "b@example.com"},
		"shared_style_data": map[string]any{
			"name":   "暖心陪伴",
			"avatar": "🤗",
		},
		"shared_style_id": float64(7),
	}

	stored := ToStorage(d, wire)
	require.Equal(t, `["学习","焦虑"]`, stored["tags_json"])
	require.Equal(t, `["a@example.com","b@example.com"]`, stored["liked_by_json"])
	require.NotContains(t, stored, "tags")
	require.NotContains(t, stored, "liked_by")
	require.NotContains(t, stored, "shared_style_data")
	require.Equal(t, int64(7), stored["shared_style_id"])

	back := ToWire(d, stored)
	require.Equal(t, []any{"学习", "焦虑"}, back["tags"])
	require.Equal(t, []any{"a@example.com", "b@example.com"}, back["liked_by"])
	require.Equal(t, "暖心陪伴", back["shared_style_data"].(map[string]any)["name"])
	require.NotContains(t, back, "tags_json")
	require.NotContains(t, back, "liked_by_json")
	require.NotContains(t, back, "shared_style_data_json")
}

func TestToWireFallbacks(t *testing.T) {
	d := postDescriptor(t)

	cases := []struct {
		name    string
		storage map[string]any
	}{
		{"empty strings", map[string]any{"tags_json": "", "liked_by_json": "", "shared_style_data_json": ""}},
		{"missing columns", map[string]any{}},
		{"garbage text", map[string]any{"tags_json": "not json", "shared_style_data_json": "{broken"}},
		{"wrong shapes", map[string]any{"tags_json": `{"a":1}`, "shared_style_data_json": `[1,2]`}},
		{"json null", map[string]any{"tags_json": "null", "shared_style_data_json": "null"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wire := ToWire(d, tc.storage)
			require.Equal(t, []any{}, wire["tags"])
			require.Nil(t, wire["shared_style_data"])
		})
	}
}

func TestToStorageDropsWrongShapes(t *testing.T) {
	d := postDescriptor(t)

	stored := ToStorage(d, map[string]any{
		"tags":              "not an array",
		"shared_style_data": []any{"not", "an", "object"},
	})

	// Wire keys are removed but no storage column is written, so a partial
	// update leaves the stored value untouched.
	require.NotContains(t, stored, "tags")
	require.NotContains(t, stored, "tags_json")
	require.NotContains(t, stored, "shared_style_data")
	require.NotContains(t, stored, "shared_style_data_json")
}

func TestNumericNormalization(t *testing.T) {
	d := postDescriptor(t)

	require.Equal(t, int64(5), ToStorage(d, map[string]any{"shared_style_id": "5"})["shared_style_id"])
	require.Equal(t, int64(5), ToStorage(d, map[string]any{"shared_style_id": 5.0})["shared_style_id"])
	require.Equal(t, int64(5), ToStorage(d, map[string]any{"shared_style_id": json.Number("5")})["shared_style_id"])
	require.Nil(t, ToStorage(d, map[string]any{"shared_style_id": "abc"})["shared_style_id"])
	require.Nil(t, ToStorage(d, map[string]any{"shared_style_id": nil})["shared_style_id"])
}

func TestChatHistoryMessagesRoundTrip(t *testing.T) {
	d, ok := ParseKind("ChatHistory")
	require.True(t, ok)

	wire := map[string]any{
		"title": "night chat",
		"messages": []any{
			map[string]any{"role": "user", "content": "睡不着"},
			map[string]any{"role": "assistant", "content": "我在呢"},
		},
	}

	stored := ToStorage(d, wire)
	require.Contains(t, stored, "messages_json")

	back := ToWire(d, stored)
	messages := back["messages"].([]any)
	require.Len(t, messages, 2)
	require.Equal(t, "睡不着", messages[0].(map[string]any)["content"])
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"Post", "Comment", "Notification", "Favorite", "ChatHistory", "ChatStyle", "EmotionReport", "TrendAnalysis", "Course"} {
		_, ok := ParseKind(name)
		require.True(t, ok, name)
	}

	_, ok := ParseKind("post")
	require.False(t, ok, "lookup is case-sensitive")
	_, ok = ParseKind("Unknown")
	require.False(t, ok)
}

func TestScopeColumns(t *testing.T) {
	post, _ := ParseKind("Post")
	require.Equal(t, "", post.ScopeColumn())

	favorite, _ := ParseKind("Favorite")
	require.Equal(t, "created_by", favorite.ScopeColumn())

	notification, _ := ParseKind("Notification")
	require.Equal(t, "recipient_email", notification.ScopeColumn())
}
