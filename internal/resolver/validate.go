package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/reference"
)

// Severity grades a validation finding
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one problem with a reference inside a document
type Finding struct {
	// Location is a JSON path such as $.weapon_types.swords.items[0].material
	Location  string
	Reference string
	Severity  Severity
	Message   string
}

func (f *Finding) String() string {
	return fmt.Sprintf("%s %s: %s (%s)", f.Severity, f.Location, f.Message, f.Reference)
}

// Validate implements Service.Validate. Malformed references are errors;
// required references that do not resolve are warnings.
func (s *service) Validate(ctx context.Context, key catalog.Key) ([]*Finding, error) {
	doc, err := s.loader.LoadDocument(ctx, key)
	if err != nil {
		return nil, err
	}

	var findings []*Finding
	var walkErr error
	walk(doc, "$", func(location, text string) bool {
		if err := ctx.Err(); err != nil {
			walkErr = err
			return false
		}

		expr, err := reference.ParseAny(text)
		if err != nil {
			findings = append(findings, &Finding{
				Location:  location,
				Reference: text,
				Severity:  SeverityError,
				Message:   err.Error(),
			})
			return true
		}

		if _, err := s.Resolve(ctx, expr, ""); err != nil {
			if !rcerr.Has(err, rcerr.CodeMissingReference) && !rcerr.Has(err, rcerr.CodeCatalogLoad) {
				walkErr = err
				return false
			}
			findings = append(findings, &Finding{
				Location:  location,
				Reference: text,
				Severity:  SeverityWarning,
				Message:   err.Error(),
			})
		}
		return true
	})
	if walkErr != nil {
		return findings, walkErr
	}

	s.logger.Debug("document validated", "key", key.String(), "findings", len(findings))
	return findings, nil
}

// walk calls fn for every string value that looks like a reference, stopping
// when fn returns false
func walk(node *catalog.Node, location string, fn func(location, text string) bool) bool {
	switch node.Kind() {
	case catalog.KindString:
		text, _ := node.Str()
		if reference.IsReference(text) && !strings.ContainsAny(strings.TrimSpace(text), " \t{") {
			return fn(location, strings.TrimSpace(text))
		}
	case catalog.KindArray:
		for i, item := range node.Items() {
			if !walk(item, fmt.Sprintf("%s[%d]", location, i), fn) {
				return false
			}
		}
	case catalog.KindObject:
		for _, key := range node.Keys() {
			if !walk(node.Get(key), location+"."+key, fn) {
				return false
			}
		}
	}
	return true
}
