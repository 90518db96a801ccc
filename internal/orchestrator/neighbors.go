package orchestrator

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/irengine/internal/ir"
)

// graphNeighbors answers scope.NeighborSource by unioning every
// relationship kind the cross-file graphs expose: files imported/imported
// by (depgraph), and files containing a caller/callee, a subtype/supertype,
// or a type user (semgraph, resolved from node IDs back to file paths via
// the node index). This mirrors the teacher's _get_file_neighbors, which
// unions whatever relationship queries its graph_store happens to support;
// here every relationship is always available, since both graphs are
// built fresh every time, so there is nothing to fall back from.
type graphNeighbors struct {
	result   *BuildResult
	nodeFile map[ir.NodeID]string
	// fileNodes inverts nodeFile, for the semgraph per-node lookups.
	fileNodes map[string][]ir.NodeID
}

// newGraphNeighbors builds the NeighborSource for one BuildResult. Call
// after Build returns; the indexes are snapshot-specific.
func newGraphNeighbors(result *BuildResult) *graphNeighbors {
	nodeFile := result.NodeFileIndex()
	fileNodes := make(map[string][]ir.NodeID, len(result.Documents))
	for id, path := range nodeFile {
		fileNodes[path] = append(fileNodes[path], id)
	}
	return &graphNeighbors{result: result, nodeFile: nodeFile, fileNodes: fileNodes}
}

// FileNeighbors implements scope.NeighborSource.
func (n *graphNeighbors) FileNeighbors(filePath string) map[string]bool {
	out := make(map[string]bool)

	if n.result.DepGraph != nil {
		modulePath := modulePathForFile(filePath)
		for _, dep := range n.result.DepGraph.Dependencies(modulePath) {
			if node, ok := n.result.DepGraph.GetNode(dep); ok && node.IsInternal() {
				out[node.FilePath] = true
			}
		}
		for _, dep := range n.result.DepGraph.Dependents(modulePath) {
			if node, ok := n.result.DepGraph.GetNode(dep); ok && node.IsInternal() {
				out[node.FilePath] = true
			}
		}
	}

	if n.result.SemGraph != nil {
		for _, nodeID := range n.fileNodes[filePath] {
			for _, related := range n.semgraphNeighbors(nodeID) {
				if path, ok := n.nodeFile[related]; ok {
					out[path] = true
				}
			}
		}
	}

	delete(out, filePath)
	return out
}

func (n *graphNeighbors) semgraphNeighbors(id ir.NodeID) []ir.NodeID {
	g := n.result.SemGraph
	var out []ir.NodeID
	out = append(out, g.Calls(id)...)
	out = append(out, g.CalledBy(id)...)
	out = append(out, g.TypeUsers(id)...)
	out = append(out, g.Implementors(id)...)
	out = append(out, g.ExtendedBy(id)...)
	if parent, ok := g.Parent(id); ok {
		out = append(out, parent)
	}
	out = append(out, g.Children(id)...)
	return out
}

// modulePathForFile mirrors irbuild.modulePathFromFile (unexported there):
// "pkg/sub/foo.go" -> "pkg.sub.foo". Duplicated rather than exported across
// a package boundary for a single-line helper.
func modulePathForFile(filePath string) string {
	ext := filepath.Ext(filePath)
	trimmed := strings.TrimSuffix(filePath, ext)
	return strings.ReplaceAll(trimmed, "/", ".")
}
