package domain

import "fmt"

// ManagerName selects the strategy a node uses to propagate enter/exit to its children.
type ManagerName string

const (
	ManagerParallel        ManagerName = "parallel"
	ManagerSequence        ManagerName = "sequence"
	ManagerSequenceReverse ManagerName = "sequenceReverse"
	ManagerStagger         ManagerName = "stagger"
	ManagerStaggerReverse  ManagerName = "staggerReverse"
	ManagerSwitch          ManagerName = "switch"
)

// ManagerNames is the closed set of supported strategies.
var ManagerNames = []ManagerName{
	ManagerParallel,
	ManagerSequence,
	ManagerSequenceReverse,
	ManagerStagger,
	ManagerStaggerReverse,
	ManagerSwitch,
}

// Valid reports whether m is a known strategy.
func (m ManagerName) Valid() bool {
	for _, n := range ManagerNames {
		if n == m {
			return true
		}
	}
	return false
}

// ParseManagerName returns the ManagerName named s.
func ParseManagerName(s string) (ManagerName, error) {
	m := ManagerName(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownManager, s)
	}
	return m, nil
}
