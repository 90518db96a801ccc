package ircache

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/standardbeagle/irengine/internal/ir"
)

// docSchema is generated once from ir.IRDocument's Go shape and reused for
// every disk-cache write; catches schema drift (a field renamed or
// retyped without bumping ir.CurrentSchemaVersion) before a stale document
// gets written next to the version byte that claims it's current.
var (
	docSchemaOnce sync.Once
	docSchema     *jsonschema.Resolved
	docSchemaErr  error
)

func resolvedDocSchema() (*jsonschema.Resolved, error) {
	docSchemaOnce.Do(func() {
		raw, err := jsonschema.For[ir.IRDocument](nil)
		if err != nil {
			docSchemaErr = fmt.Errorf("ircache: deriving IRDocument schema: %w", err)
			return
		}
		resolved, err := raw.Resolve(nil)
		if err != nil {
			docSchemaErr = fmt.Errorf("ircache: resolving IRDocument schema: %w", err)
			return
		}
		docSchema = resolved
	})
	return docSchema, docSchemaErr
}

// validateForCache checks doc against its derived JSON schema before a
// disk write. A validation failure here means the in-memory struct no
// longer matches what CurrentSchemaVersion promises readers, which is a
// bug worth failing loudly on rather than silently caching a document
// that future readers can't trust.
func validateForCache(doc *ir.IRDocument) error {
	resolved, err := resolvedDocSchema()
	if err != nil {
		return err
	}
	if err := resolved.Validate(doc); err != nil {
		return fmt.Errorf("ircache: IRDocument failed schema validation: %w", err)
	}
	return nil
}
