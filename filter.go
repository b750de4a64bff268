package depot

// Operation is the kind of test a filter node applies to an archetype signature
type Operation int

const (
	// OpAnd keeps archetypes whose signature includes every listed component
	OpAnd Operation = iota
	// OpNot keeps archetypes whose signature shares no component with the list
	OpNot
)

type filterNode struct {
	op        Operation
	signature Signature
}

// Evaluate reports whether an archetype with signature sig passes the node
func (n filterNode) Evaluate(sig Signature) bool {
	switch n.op {
	case OpAnd:
		return sig.Includes(n.signature)
	case OpNot:
		return sig.Disjoint(n.signature)
	}
	return false
}
