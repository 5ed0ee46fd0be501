// Package refdata serves the static CID-10 lookup list used by the form's
// diagnosis-code autocomplete. Display only; codes are never validated
// against this list.
package refdata

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed cid10.csv
var cid10CSV string

// CID is one diagnosis-code entry.
type CID struct {
	Code        string `json:"codigo"`
	Description string `json:"descricao"`
}

var (
	loadOnce sync.Once
	entries  []CID
)

func load() {
	for _, line := range strings.Split(cid10CSV, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		code, desc, ok := strings.Cut(line, ";")
		if !ok {
			continue
		}
		entries = append(entries, CID{Code: code, Description: desc})
	}
}

// All returns the full reference list in file order.
func All() []CID {
	loadOnce.Do(load)
	return entries
}

// Search returns entries whose code or description contains the query,
// case-insensitively. An empty query returns the full list.
func Search(query string) []CID {
	loadOnce.Do(load)
	if query == "" {
		return entries
	}
	q := strings.ToLower(query)
	out := make([]CID, 0)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Code), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	return out
}
