package yahoo

import "github.com/tidwall/gjson"

// ParseTrending extracts ticker symbols from a decoded trending document in
// source order. Duplicates and empty strings are kept as sent. Quotes
// without a string symbol are skipped and any missing container yields an
// empty list.
func ParseTrending(doc gjson.Result) []string {
	results := doc.Get("finance.result")
	if !results.IsArray() || len(results.Array()) == 0 {
		return []string{}
	}
	quotes := results.Array()[0].Get("quotes")
	if !quotes.IsArray() {
		return []string{}
	}

	list := quotes.Array()
	symbols := make([]string, 0, len(list))
	for _, q := range list {
		sym := q.Get("symbol")
		if sym.Type != gjson.String {
			continue
		}
		symbols = append(symbols, sym.Str)
	}
	return symbols
}
