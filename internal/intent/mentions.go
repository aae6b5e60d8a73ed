package intent

import "strings"

// ExtractMentionedNames pulls business names out of free text using generic
// "business <X>" / "e-commerce de <X>" / "boutique de <X>" shapes,
// independent of the catalog. The funnel tracker records these even when the
// name matches no listing.
func ExtractMentionedNames(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range mentionEntityPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			k := strings.ToLower(name)
			if name == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, name)
		}
	}
	return out
}
