// lines.go — Decide the text of each contextual line from the subject.
package layout

import (
	"log"
	"strings"
	"time"
)

// DisplayName returns the user's public name, else their metadata name,
// trimmed. Empty means no name resolves.
func DisplayName(rc *RenderContext) string {
	if n := strings.TrimSpace(rc.UserPublicName); n != "" {
		return n
	}
	return strings.TrimSpace(rc.UserMetaName)
}

// IdentityLine returns the first line: a battle outcome for battles with a
// result, otherwise "by <name>". ok is false when nothing should be drawn.
func IdentityLine(rc *RenderContext) (text string, ok bool) {
	s := rc.Subject
	if s.IsBattle() && strings.TrimSpace(*s.BattleResult) != "" {
		result := strings.ToLower(*s.BattleResult)
		switch {
		case strings.Contains(result, "draw") || strings.Contains(result, "tie"):
			return "Draw", true
		case strings.Contains(result, "i won") || strings.Contains(result, "win"):
			if name := DisplayName(rc); name != "" {
				return name + " won", true
			}
			return "I won", true
		case strings.TrimSpace(s.OpponentName) != "":
			return strings.TrimSpace(s.OpponentName) + " won", true
		default:
			return "Loss", true
		}
	}

	if name := DisplayName(rc); name != "" {
		return "by " + name, true
	}
	return "", false
}

// DateLine returns the painted or played date line.
func DateLine(rc *RenderContext) (string, bool) {
	s := rc.Subject
	if !rc.ShowPaintedDate || strings.TrimSpace(s.PaintedDate) == "" {
		return "", false
	}
	date, ok := FormatDate(s.PaintedDate)
	if !ok {
		log.Printf("warning: unrecognised date %q, drawing it as is", s.PaintedDate)
	}
	if s.IsBattle() {
		return "Played on " + date, true
	}
	return "Painted " + date, true
}

// CollectionLine returns the collection (box) name.
func CollectionLine(rc *RenderContext) (string, bool) {
	if !rc.ShowCollection || rc.Subject.Box == nil {
		return "", false
	}
	name := strings.TrimSpace(rc.Subject.Box.Name)
	return name, name != ""
}

// GameLine returns the game name and its icon reference.
func GameLine(rc *RenderContext) (name, icon string, ok bool) {
	if !rc.ShowGameDetails {
		return "", "", false
	}
	g := rc.Subject.GameInfo()
	if g == nil || strings.TrimSpace(g.Name) == "" {
		return "", "", false
	}
	return strings.TrimSpace(g.Name), strings.TrimSpace(g.Icon), true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO date in long US form, e.g. "March 3, 2024".
// Unparseable input is returned unchanged with ok false.
func FormatDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("January 2, 2006"), true
		}
	}
	return raw, false
}
