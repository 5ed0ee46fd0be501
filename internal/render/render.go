// Package render produces the declaration document as a fully substituted
// HTML string. It is a pure, single-pass, stateless transform: a flat field
// map goes in, a complete document comes out.
package render

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed template.html
var declarationTemplate string

// CIDNotInformed is the literal printed when the certificate carries no
// diagnosis code. Exactly one of the raw code or this literal appears in
// the output, never both.
const CIDNotInformed = "Não Informado"

var placeholderRe = regexp.MustCompile(`\{[a-z0-9_]+\}`)

// MissingFieldError reports template placeholders that have no mapped value.
// It indicates a field-mapping defect, not a user-correctable input problem.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("template placeholders without mapped value: %s", strings.Join(e.Fields, ", "))
}

// Render substitutes every placeholder of the embedded declaration template
// with its value from fields. Every placeholder present in the template must
// have a corresponding key; otherwise Render fails with *MissingFieldError
// and returns no output. Output is deterministic for a given field map.
func Render(fields map[string]string) (string, error) {
	return renderTemplate(declarationTemplate, fields)
}

func renderTemplate(tpl string, fields map[string]string) (string, error) {
	missing := missingFields(tpl, fields)
	if len(missing) > 0 {
		return "", &MissingFieldError{Fields: missing}
	}

	// Longer keys first so that adjacent tokens never shadow each other.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	out := tpl
	for _, k := range keys {
		out = strings.ReplaceAll(out, "{"+k+"}", fields[k])
	}
	return out, nil
}

func missingFields(tpl string, fields map[string]string) []string {
	seen := map[string]bool{}
	var missing []string
	for _, tok := range placeholderRe.FindAllString(tpl, -1) {
		key := strings.TrimSuffix(strings.TrimPrefix(tok, "{"), "}")
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// Placeholders returns the distinct placeholder names of the embedded
// template, in order of first appearance.
func Placeholders() []string {
	seen := map[string]bool{}
	var names []string
	for _, tok := range placeholderRe.FindAllString(declarationTemplate, -1) {
		key := strings.TrimSuffix(strings.TrimPrefix(tok, "{"), "}")
		if !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
	}
	return names
}
