package chart

// synonyms.go - data-driven synonym table for column resolution

// DefaultSynonyms maps canonical business terms to likely real-world column
// phrasings. Tuned for retail/sales datasets; callers with other domains
// should supply their own table (see config `synonyms:`) rather than rely on
// these guesses.
var DefaultSynonyms = map[string][]string{
	"revenue":  {"total sales", "sales amount", "sales", "amount", "total", "price"},
	"value":    {"amount", "total", "sales", "price", "quantity"},
	"date":     {"order date", "invoice date", "created at", "timestamp", "day"},
	"category": {"product category", "type", "segment", "group", "class"},
	"units":    {"units sold", "quantity", "qty", "count", "items"},
	"region":   {"area", "territory", "zone", "location", "state"},
	"product":  {"product name", "item", "sku", "title"},
	"customer": {"customer name", "client", "account", "buyer"},
	"profit":   {"margin", "net income", "earnings"},
}

// MergeSynonyms overlays extra entries onto the default table, returning a
// new map. Entries in extra replace same-key defaults entirely.
func MergeSynonyms(extra map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(DefaultSynonyms)+len(extra))
	for k, v := range DefaultSynonyms {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
