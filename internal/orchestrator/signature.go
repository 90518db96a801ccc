package orchestrator

import (
	"github.com/standardbeagle/irengine/internal/ir"
	"github.com/standardbeagle/irengine/internal/types"
)

// signatureFromSymbol builds the ir.Signature C4 needs from the structural
// layer's pre-rendered signature text. The teacher's EnhancedSymbol carries
// a single formatted Signature string and a ParameterCount, not a
// structured parameter list (name/type/variadic per parameter) — there is
// no per-parameter breakdown anywhere upstream of this to recover one from
// without re-parsing every grammar's parameter-list node shape, which is
// out of scope here. Folding the whole signature text into one synthetic
// parameter keeps SignatureHash sensitive to any real signature edit
// (added/removed/retyped parameter, changed return type) even though the
// resulting ir.Signature doesn't expose individual parameters to callers
// that want them.
func signatureFromSymbol(sym types.EnhancedSymbol) ir.Signature {
	sig := ir.Signature{ReturnType: sym.TypeInfo}
	if sym.Signature != "" {
		sig.Params = []ir.Parameter{{Name: "signature", Type: sym.Signature}}
	}
	return sig
}
