package resolve

import (
	"strings"

	"github.com/standardbeagle/irengine/internal/ir"
)

// GlobalContext is the symbol table the resolver consults to decide
// whether an import path names a module built from this snapshot. It is
// populated once, after every file in the snapshot has produced an
// IRDocument, and then shared read-only across all resolver calls.
type GlobalContext struct {
	moduleFiles     map[string]string   // module FQN -> file path
	exportedSymbols map[string][]string // module FQN -> exported top-level symbol names
	moduleRoots     map[string]bool     // first path segment of every known internal module
}

// NewGlobalContext creates an empty context ready for AddDocument calls.
func NewGlobalContext() *GlobalContext {
	return &GlobalContext{
		moduleFiles:     make(map[string]string),
		exportedSymbols: make(map[string][]string),
		moduleRoots:     make(map[string]bool),
	}
}

// AddDocument registers one file's module node and its exported symbols.
// Call once per IRDocument produced by the generator before any
// ResolveImport call; order across documents does not matter.
func (c *GlobalContext) AddDocument(doc *ir.IRDocument) {
	mod, ok := doc.ModuleNode()
	if !ok {
		return
	}
	c.moduleFiles[mod.FQN] = doc.FilePath

	if root, _, found := strings.Cut(mod.FQN, "."); found {
		c.moduleRoots[root] = true
	} else {
		c.moduleRoots[mod.FQN] = true
	}

	for _, n := range doc.Nodes {
		if n.Visibility == ir.VisibilityPublic && n.FQN != mod.FQN {
			c.exportedSymbols[mod.FQN] = append(c.exportedSymbols[mod.FQN], n.Name)
		}
	}
}

// HasModule reports whether fqn matches a module built from this
// snapshot.
func (c *GlobalContext) HasModule(fqn string) bool {
	_, ok := c.moduleFiles[fqn]
	return ok
}

// FilePath returns the file backing an internal module, if known.
func (c *GlobalContext) FilePath(fqn string) (string, bool) {
	p, ok := c.moduleFiles[fqn]
	return p, ok
}

// KnownModulePaths returns every internal module FQN known to
// the context, used as the candidate pool for edit-distance diagnostics.
func (c *GlobalContext) KnownModulePaths() []string {
	out := make([]string, 0, len(c.moduleFiles))
	for fqn := range c.moduleFiles {
		out = append(out, fqn)
	}
	return out
}

// LooksInternal reports whether importPath shares its root segment with
// any module actually present in the snapshot, without itself resolving
// to a known module. This is the heuristic that promotes an otherwise
// unmatched import to KindUnresolved (likely a typo or a file not yet
// indexed) instead of silently treating it as a third-party package.
func (c *GlobalContext) LooksInternal(importPath string) bool {
	root, _, found := strings.Cut(importPath, ".")
	if !found {
		root = importPath
	}
	return c.moduleRoots[root]
}
