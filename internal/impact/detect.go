package impact

import "github.com/standardbeagle/irengine/internal/ir"

type symbolSnapshot struct {
	nodeID        ir.NodeID
	signatureHash string
	filePath      string
}

// DetectSymbolChanges compares every symbol defined in changedFiles
// across two snapshots and classifies each as added, deleted, or
// signature-changed. Symbols present in both snapshots with an unchanged
// or empty signature hash produce no change entry — body-only edits are
// the caller's responsibility to flag separately (the incremental
// cascade in internal/semir already tells them apart).
func DetectSymbolChanges(oldNodes, newNodes []ir.Node, changedFiles map[string]bool) []SymbolChange {
	oldSymbols := collectSymbols(oldNodes, changedFiles)
	newSymbols := collectSymbols(newNodes, changedFiles)

	var changes []SymbolChange

	for fqn, old := range oldSymbols {
		if _, stillExists := newSymbols[fqn]; !stillExists {
			changes = append(changes, SymbolChange{
				FQN:        fqn,
				NodeID:     old.nodeID,
				ChangeType: ChangeDeleted,
				FilePath:   old.filePath,
			})
		}
	}

	for fqn, n := range newSymbols {
		if _, existedBefore := oldSymbols[fqn]; !existedBefore {
			changes = append(changes, SymbolChange{
				FQN:        fqn,
				NodeID:     n.nodeID,
				ChangeType: ChangeAdded,
				FilePath:   n.filePath,
			})
		}
	}

	for fqn, n := range newSymbols {
		old, existedBefore := oldSymbols[fqn]
		if !existedBefore {
			continue
		}
		if old.signatureHash != "" && n.signatureHash != "" && old.signatureHash != n.signatureHash {
			changes = append(changes, SymbolChange{
				FQN:              fqn,
				NodeID:           n.nodeID,
				ChangeType:       ChangeSignatureChanged,
				FilePath:         n.filePath,
				OldSignatureHash: old.signatureHash,
				NewSignatureHash: n.signatureHash,
			})
		}
	}

	return changes
}

func collectSymbols(nodes []ir.Node, changedFiles map[string]bool) map[string]symbolSnapshot {
	out := make(map[string]symbolSnapshot)
	for _, n := range nodes {
		if n.Kind == ir.NodeKindModule || n.Kind == ir.NodeKindImport || n.Kind == ir.NodeKindCall {
			continue
		}
		if !changedFiles[n.FilePath] {
			continue
		}
		out[n.FQN] = symbolSnapshot{nodeID: n.ID, signatureHash: n.SignatureHash, filePath: n.FilePath}
	}
	return out
}
