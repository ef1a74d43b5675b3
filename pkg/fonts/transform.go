// transform.go — Apply CSS-style text-transform to rendered strings.
package fonts

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TransformText applies cfg.Transform to text. Capitalize upper-cases the
// first letter of each word and leaves the rest untouched, like CSS.
func TransformText(text string, cfg FontStyleConfig) string {
	if text == "" {
		return text
	}
	switch cfg.Transform {
	case "uppercase":
		return cases.Upper(language.Und).String(text)
	case "lowercase":
		return cases.Lower(language.Und).String(text)
	case "capitalize":
		return cases.Title(language.Und, cases.NoLower).String(text)
	default:
		return text
	}
}
