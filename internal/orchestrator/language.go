package orchestrator

import (
	"path/filepath"

	"github.com/standardbeagle/irengine/internal/parser"
)

// languageForPath resolves a tree-sitter grammar name from a repo-relative
// path's extension, delegating to the teacher's extension table so the
// orchestrator and the rest of the parser layer never disagree about what
// language a file is.
func languageForPath(path string) string {
	return parser.GetLanguageFromExtension(filepath.Ext(path))
}
