package cli

import (
	"github.com/yildizm/GefSum/internal/emoji"
	"github.com/yildizm/GefSum/internal/model"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// GetKindEmoji returns the symbol for an investigation kind
func GetKindEmoji(kind model.Kind) string {
	switch kind {
	case model.KindCPT:
		return GetEmoji("cpt")
	case model.KindBorehole:
		return GetEmoji("borehole")
	default:
		return GetEmoji("file")
	}
}
