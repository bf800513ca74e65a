package utils

import (
	"net/url"
	"strings"
)

const (
	legacyUploadPrefix    = "/uploads/"
	canonicalUploadPrefix = "/api/uploads/"
)

// NormalizeUploadURL rewrites a stored media reference to the canonical
// /api/uploads path scheme. Already-canonical paths are returned unchanged,
// legacy /uploads paths get the canonical prefix, and absolute URLs pointing
// at a loopback host are reduced to their normalized path. Anything else
// (external URLs, emoji avatars, unparseable text) passes through untouched.
// The function is pure and never fails.
func NormalizeUploadURL(input string) string {
	value := strings.TrimSpace(input)
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, canonicalUploadPrefix) {
		return value
	}
	if strings.HasPrefix(value, legacyUploadPrefix) {
		return canonicalUploadPrefix + value[len(legacyUploadPrefix):]
	}
	parsed, err := url.Parse(value)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return value
	}
	if !isLoopbackHost(parsed.Hostname()) {
		return value
	}
	if normalized := normalizeUploadPath(parsed.Path); normalized != "" {
		return normalized
	}
	return value
}

// NormalizeSharedStyleAvatar applies the upload URL normalizer to the avatar
// field of a shared persona snapshot, returning a copy when the avatar
// changed and the original map otherwise.
func NormalizeSharedStyleAvatar(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	avatar, ok := data["avatar"].(string)
	if !ok {
		return data
	}
	normalized := NormalizeUploadURL(avatar)
	if normalized == avatar {
		return data
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	out["avatar"] = normalized
	return out
}

func isLoopbackHost(hostname string) bool {
	lower := strings.ToLower(hostname)
	switch lower {
	case "localhost", "127.0.0.1", "::1", "[::1]":
		return true
	}
	return strings.HasPrefix(lower, "127.")
}

func normalizeUploadPath(pathname string) string {
	if pathname == "" {
		return ""
	}
	if strings.HasPrefix(pathname, canonicalUploadPrefix) {
		return pathname
	}
	if strings.HasPrefix(pathname, legacyUploadPrefix) {
		return canonicalUploadPrefix + pathname[len(legacyUploadPrefix):]
	}
	return ""
}
