package orchestrator

import (
	"context"

	"github.com/standardbeagle/irengine/internal/impact"
	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/standardbeagle/irengine/internal/scope"
)

// RebuildOutcome is what one incremental pass produces: the fresh build
// plus the impact/scope analysis that explains why each affected file was
// pulled in.
type RebuildOutcome struct {
	Result *BuildResult
	Impact *impact.Result
	Scope  map[string]bool // nil means "the whole repo was in scope"
}

// Rebuild reruns the layered build and reports the impact of changeSet
// against prev (the previous build, or nil for a first build). Every file
// is re-lowered through C1-C4 on every call — ircache.Cache already
// content-addresses by file bytes, so an unchanged file is a cache hit
// rather than repeated work, the same "just rescan, let the cache absorb
// it" shape the teacher's directory walk uses on every reindex. What
// Rebuild adds on top is C8/C9: comparing the new semantic graph's symbols
// against prev's to find what changed, analyzing its ripple effect, and
// reporting the scope that ripple justified, regardless of mode.
func (o *Orchestrator) Rebuild(ctx context.Context, root string, changeSet scope.ChangeSet, mode scope.Mode, prev *BuildResult) (*RebuildOutcome, error) {
	result, err := o.Build(ctx, root)
	if err != nil {
		return nil, err
	}

	var impactResult *impact.Result
	if prev != nil {
		oldNodes := allNodes(prev.Documents)
		newNodes := allNodes(result.Documents)
		changes := impact.DetectSymbolChanges(oldNodes, newNodes, changeSet.AllChanged())
		if len(changes) > 0 {
			analyzer := impact.NewAnalyzer()
			impactResult = analyzer.AnalyzeImpact(result.SemGraph, changes)
		}
	}

	var neighbors scope.NeighborSource = emptyNeighbors{}
	totalFiles := len(result.Documents)
	if prev != nil {
		neighbors = newGraphNeighbors(prev)
	}
	expander := scope.NewExpander(neighbors)
	scopeFiles := expander.ExpandScope(changeSet, mode, totalFiles, impactResult)

	return &RebuildOutcome{Result: result, Impact: impactResult, Scope: scopeFiles}, nil
}

func allNodes(docs []*ir.IRDocument) []ir.Node {
	var out []ir.Node
	for _, d := range docs {
		out = append(out, d.Nodes...)
	}
	return out
}

// emptyNeighbors backs scope.NeighborSource for a first build, where there
// is no previous graph to walk; every file reports no neighbors, so
// BALANCED/DEEP expansion degenerates to exactly the changed files.
type emptyNeighbors struct{}

func (emptyNeighbors) FileNeighbors(string) map[string]bool { return nil }
