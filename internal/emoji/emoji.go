package emoji

import "sync/atomic"

// emojiMap holds [emoji, fallback] pairs
var emojiMap = map[string][2]string{
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"statistics": {"📊", "[STATS]"},
	"help":       {"❓", "[?]"},
	"target":     {"🎯", "[>]"},
	"door":       {"🚪", "[EXIT]"},
	"rocket":     {"🚀", "[GO]"},
	"cpt":        {"📈", "[CPT]"},
	"borehole":   {"🕳️", "[BORE]"},
	"layer":      {"🟫", "[LYR]"},
	"location":   {"📍", "[LOC]"},
	"search":     {"🔍", "[FIND]"},
	"folder":     {"📁", "[DIR]"},
	"file":       {"📄", "[FILE]"},
	"export":     {"💾", "[OUT]"},
	"watch":      {"👀", "[WATCH]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	mapping, exists := emojiMap[key]
	if !exists {
		return "[?]"
	}
	if emojiDisabled.Load() {
		return mapping[1]
	}
	return mapping[0]
}
