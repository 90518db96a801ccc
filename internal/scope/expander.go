package scope

import (
	"github.com/standardbeagle/irengine/internal/impact"
)

// NeighborSource answers "what files are adjacent to this one" for BFS
// expansion: import/imported-by, caller/callee, and subclass/superclass
// relationships, all folded into one set per the teacher's
// _get_file_neighbors (which unions every relationship kind it has a
// graph_store method for). The orchestrator supplies the concrete
// implementation, built from depgraph.Graph and semgraph.Graph.
type NeighborSource interface {
	FileNeighbors(filePath string) map[string]bool
}

// Expander computes the rebuild scope for one indexing pass.
type Expander struct {
	neighbors NeighborSource
}

// NewExpander creates an Expander backed by neighbors.
func NewExpander(neighbors NeighborSource) *Expander {
	return &Expander{neighbors: neighbors}
}

// ExpandScope widens changeSet.AllChanged() according to mode. A
// SIGNATURE_CHANGED symbol in impactResult auto-escalates FAST/BALANCED
// to DEEP, since a breaking signature change needs transitive
// invalidation regardless of what mode the caller originally asked for.
// A nil or empty return means "process the whole repository" (BOOTSTRAP
// and whole-repo DEEP both signal this way, matching the teacher's empty
// set convention).
func (e *Expander) ExpandScope(changeSet ChangeSet, mode Mode, totalFiles int, impactResult *impact.Result) map[string]bool {
	if impactResult != nil && hasSignatureChanges(impactResult) && (mode == ModeFast || mode == ModeBalanced) {
		mode = ModeDeep
	}

	switch mode {
	case ModeFast:
		return changeSet.AllChanged()

	case ModeBalanced:
		return e.expandToNeighbors(changeSet.AllChanged(), BalancedNeighborDepth, BalancedMaxNeighbors)

	case ModeDeep:
		if impactResult != nil && (len(impactResult.DirectAffected) > 0 || len(impactResult.TransitiveAffected) > 0) {
			result := changeSet.AllChanged()
			for f := range impactResult.AffectedFiles {
				result[f] = true
			}
			return result
		}
		if totalFiles > 0 {
			maxFiles := DeepSubsetMaxFiles
			if byPercent := int(float64(totalFiles) * DeepSubsetMaxPercent); byPercent < maxFiles {
				maxFiles = byPercent
			}
			return e.expandToNeighbors(changeSet.AllChanged(), DeepNeighborDepth, maxFiles)
		}
		return nil // whole repo

	case ModeBootstrap:
		return nil // whole repo

	case ModeRepair:
		return e.expandForRepair(changeSet)

	default:
		return changeSet.AllChanged()
	}
}

// ExpandFromQuery resolves an on-demand DEEP subset around the files a
// query touched, capped the same way as ExpandScope's DEEP fallback.
func (e *Expander) ExpandFromQuery(queryFiles map[string]bool, totalFiles int) map[string]bool {
	maxFiles := DeepSubsetMaxFiles
	if byPercent := int(float64(totalFiles) * DeepSubsetMaxPercent); byPercent < maxFiles {
		maxFiles = byPercent
	}
	return e.expandToNeighbors(queryFiles, DeepNeighborDepth, maxFiles)
}

func hasSignatureChanges(result *impact.Result) bool {
	for _, s := range result.ChangedSymbols {
		if s.ChangeType == impact.ChangeSignatureChanged {
			return true
		}
	}
	return false
}

// expandToNeighbors does a breadth-first walk out from start, following
// NeighborSource.FileNeighbors, stopping at depth hops or once result
// reaches maxFiles.
func (e *Expander) expandToNeighbors(start map[string]bool, depth, maxFiles int) map[string]bool {
	type queued struct {
		file  string
		depth int
	}

	result := make(map[string]bool, len(start))
	visited := make(map[string]bool, len(start))
	var queue []queued
	for f := range start {
		result[f] = true
		visited[f] = true
		queue = append(queue, queued{file: f, depth: 0})
	}

	for len(queue) > 0 && len(result) < maxFiles {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= depth {
			continue
		}

		for neighbor := range e.neighbors.FileNeighbors(cur.file) {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			result[neighbor] = true
			queue = append(queue, queued{file: neighbor, depth: cur.depth + 1})
			if len(result) >= maxFiles {
				break
			}
		}
	}

	return result
}

// expandForRepair restores the neighbors of every deleted file into the
// scope, so files that referenced something now gone get a chance to
// report the resulting dangling reference.
func (e *Expander) expandForRepair(changeSet ChangeSet) map[string]bool {
	result := changeSet.AllChanged()
	for deletedFile := range changeSet.Deleted {
		for neighbor := range e.neighbors.FileNeighbors(deletedFile) {
			result[neighbor] = true
		}
	}
	return result
}
