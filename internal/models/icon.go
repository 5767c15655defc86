package models

import "strings"

// Icon names the glyph shown next to a content item
type Icon string

// Known icons. Anything else resolves to IconDefault.
const (
	IconCode       Icon = "code"
	IconGlobe      Icon = "globe"
	IconServer     Icon = "server"
	IconDatabase   Icon = "database"
	IconCPU        Icon = "cpu"
	IconSmartphone Icon = "smartphone"
	IconCloud      Icon = "cloud"
	IconShield     Icon = "shield"
	IconBrain      Icon = "brain"
	IconBook       Icon = "book"

	IconDefault = IconBook
)

var knownIcons = map[string]Icon{
	"code":       IconCode,
	"globe":      IconGlobe,
	"server":     IconServer,
	"database":   IconDatabase,
	"cpu":        IconCPU,
	"smartphone": IconSmartphone,
	"cloud":      IconCloud,
	"shield":     IconShield,
	"brain":      IconBrain,
	"book":       IconBook,
}

// ResolveIcon maps a stored icon name to a known icon.
// Names are matched case-insensitively, so "Globe" and "globe" are the same icon.
func ResolveIcon(name string) Icon {
	if icon, ok := knownIcons[strings.ToLower(strings.TrimSpace(name))]; ok {
		return icon
	}
	return IconDefault
}
