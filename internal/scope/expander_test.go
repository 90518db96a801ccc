package scope

import (
	"testing"

	"github.com/standardbeagle/irengine/internal/impact"
	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/stretchr/testify/assert"
)

type fakeNeighbors map[string]map[string]bool

func (f fakeNeighbors) FileNeighbors(filePath string) map[string]bool {
	return f[filePath]
}

func TestExpandScope_Fast_OnlyChangedFiles(t *testing.T) {
	e := NewExpander(fakeNeighbors{})
	changeSet := ChangeSet{Modified: map[string]bool{"a.go": true}}

	result := e.ExpandScope(changeSet, ModeFast, 0, nil)
	assert.Equal(t, map[string]bool{"a.go": true}, result)
}

func TestExpandScope_Balanced_ExpandsOneHop(t *testing.T) {
	neighbors := fakeNeighbors{
		"a.go": {"b.go": true},
		"b.go": {"a.go": true, "c.go": true},
	}
	e := NewExpander(neighbors)
	changeSet := ChangeSet{Modified: map[string]bool{"a.go": true}}

	result := e.ExpandScope(changeSet, ModeBalanced, 0, nil)
	assert.True(t, result["a.go"])
	assert.True(t, result["b.go"])
	assert.False(t, result["c.go"], "balanced depth 1 should not reach c.go")
}

func TestExpandScope_Bootstrap_ReturnsNilForWholeRepo(t *testing.T) {
	e := NewExpander(fakeNeighbors{})
	result := e.ExpandScope(ChangeSet{Modified: map[string]bool{"a.go": true}}, ModeBootstrap, 0, nil)
	assert.Nil(t, result)
}

func TestExpandScope_SignatureChangeEscalatesFastToDeep(t *testing.T) {
	e := NewExpander(fakeNeighbors{})
	changeSet := ChangeSet{Modified: map[string]bool{"a.go": true}}
	result := &impact.Result{
		ChangedSymbols: []impact.SymbolChange{{ChangeType: impact.ChangeSignatureChanged}},
		DirectAffected: map[ir.NodeID]bool{"callerNode": true},
		AffectedFiles:  map[string]bool{"b.go": true},
	}

	out := e.ExpandScope(changeSet, ModeFast, 0, result)
	assert.True(t, out["a.go"])
	assert.True(t, out["b.go"], "escalation to deep should pull in impact-affected files")
}

func TestExpandScope_Deep_UsesImpactResultWhenPresent(t *testing.T) {
	e := NewExpander(fakeNeighbors{})
	changeSet := ChangeSet{Modified: map[string]bool{"a.go": true}}

	impactResult := &impact.Result{
		DirectAffected: map[ir.NodeID]bool{"callerNode": true},
		AffectedFiles:  map[string]bool{"b.go": true},
	}

	out := e.ExpandScope(changeSet, ModeDeep, 10, impactResult)
	assert.True(t, out["a.go"])
	assert.True(t, out["b.go"])
}

func TestExpandScope_Repair_RestoresDeletedFileNeighbors(t *testing.T) {
	neighbors := fakeNeighbors{
		"deleted.go": {"importer.go": true},
	}
	e := NewExpander(neighbors)
	changeSet := ChangeSet{Deleted: map[string]bool{"deleted.go": true}}

	out := e.ExpandScope(changeSet, ModeRepair, 0, nil)
	assert.True(t, out["importer.go"])
}
