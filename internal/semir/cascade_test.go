package semir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide_NewFunction(t *testing.T) {
	d := Decide(FunctionSnapshot{Exists: false}, "Foo", "sig1", "body1")
	assert.Equal(t, DecisionFull, d)
}

func TestDecide_Renamed(t *testing.T) {
	old := FunctionSnapshot{Exists: true, Name: "Foo", SignatureHash: "sig1", BodyHash: "body1"}
	d := Decide(old, "Bar", "sig1", "body1")
	assert.Equal(t, DecisionFull, d)
}

func TestDecide_SignatureChanged(t *testing.T) {
	old := FunctionSnapshot{Exists: true, Name: "Foo", SignatureHash: "sig1", BodyHash: "body1"}
	d := Decide(old, "Foo", "sig2", "body1")
	assert.Equal(t, DecisionFull, d)
}

func TestDecide_BodyOnly(t *testing.T) {
	old := FunctionSnapshot{Exists: true, Name: "Foo", SignatureHash: "sig1", BodyHash: "body1"}
	d := Decide(old, "Foo", "sig1", "body2")
	assert.Equal(t, DecisionBodyOnly, d)
}

func TestDecide_Unchanged(t *testing.T) {
	old := FunctionSnapshot{Exists: true, Name: "Foo", SignatureHash: "sig1", BodyHash: "body1"}
	d := Decide(old, "Foo", "sig1", "body1")
	assert.Equal(t, DecisionUnchanged, d)
}
