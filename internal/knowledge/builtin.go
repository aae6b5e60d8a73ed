package knowledge

import "strings"

// normalize lowercases and trims a matching key. Accented characters are
// kept as-is: both the keyword tables and user input are French.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Builtin returns the hard-coded fallback map used when the remote
// knowledge base cannot be loaded or comes back empty.
func Builtin() *Base {
	b := NewBase()
	b.Put(Entry{
		Name: "Boutique Chaussures",
		Description: "Une boutique en ligne spécialisée dans les chaussures tendance pour femmes, " +
			"avec fournisseurs négociés et boutique clé en main.",
		Keywords: []string{"chaussures", "sneakers", "mode", "femme"},
		Price:    2500000,
		ROINote:  "rentabilisé en 4 à 6 mois en moyenne",
	})
	b.Put(Entry{
		Name: "Boutique Cosmétiques",
		Description: "Un e-commerce de produits cosmétiques naturels, marque déjà établie " +
			"avec une clientèle fidèle sur les réseaux sociaux.",
		Keywords: []string{"cosmétiques", "beauté", "soins", "naturel"},
		Price:    3200000,
		ROINote:  "rentabilisé en 5 à 7 mois en moyenne",
	})
	b.Put(Entry{
		Name: "Boutique Montres",
		Description: "Une boutique de montres et accessoires pour hommes, " +
			"positionnée sur le segment milieu de gamme.",
		Keywords: []string{"montres", "accessoires", "homme"},
		Price:    1800000,
		ROINote:  "rentabilisé en 3 à 5 mois en moyenne",
	})
	return b
}
