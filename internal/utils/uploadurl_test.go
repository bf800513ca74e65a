package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeUploadURL(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical unchanged", "/api/uploads/x.png", "/api/uploads/x.png"},
		{"legacy rewritten", "/uploads/x.png", "/api/uploads/x.png"},
		{"localhost absolute", "http://localhost:3001/uploads/x.png", "/api/uploads/x.png"},
		{"localhost canonical path", "http://localhost:3001/api/uploads/x.png", "/api/uploads/x.png"},
		{"loopback ip", "http://127.0.0.1:8080/uploads/a.jpg", "/api/uploads/a.jpg"},
		{"external unchanged", "https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"loopback without upload path unchanged", "http://localhost:3001/other/x.png", "http://localhost:3001/other/x.png"},
		{"emoji unchanged", "🤗", "🤗"},
		{"empty", "", ""},
		{"whitespace trimmed", "  /uploads/y.png", "/api/uploads/y.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeUploadURL(tc.input))
		})
	}
}

func TestNormalizeUploadURLIdempotent(t *testing.T) {
	inputs := []string{
		"/uploads/x.png",
		"/api/uploads/x.png",
		"http://localhost:3001/uploads/x.png",
		"https://cdn.example.com/x.png",
		"not a url at all",
		"",
	}
	for _, input := range inputs {
		once := NormalizeUploadURL(input)
		require.Equal(t, once, NormalizeUploadURL(once), "input %q", input)
	}
}

func TestNormalizeSharedStyleAvatar(t *testing.T) {
	original := map[string]any{"avatar": "/uploads/a.png", "name": "Calm"}
	normalized := NormalizeSharedStyleAvatar(original)
	require.Equal(t, "/api/uploads/a.png", normalized["avatar"])
	require.Equal(t, "Calm", normalized["name"])
	// The input map is not mutated.
	require.Equal(t, "/uploads/a.png", original["avatar"])

	unchanged := map[string]any{"avatar": "🤗"}
	require.Equal(t, unchanged, NormalizeSharedStyleAvatar(unchanged))

	require.Nil(t, NormalizeSharedStyleAvatar(nil))
}
