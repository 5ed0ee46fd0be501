package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var brDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// Layouts accepted by FormatDateBR besides the already-formatted DD/MM/YYYY.
var parseLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02-01-2006",
	"02.01.2006",
}

// FormatDateBR normalizes a date string to the Brazilian DD/MM/YYYY form.
// Unparseable input is returned unchanged, as the original form did.
func FormatDateBR(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || brDateRe.MatchString(s) {
		return s
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

var monthsPTBR = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// LongDateBR renders t as long-form Brazilian Portuguese text,
// e.g. "30 de agosto de 2026". Used for the server-computed signature date.
func LongDateBR(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthsPTBR[t.Month()-1], t.Year())
}
