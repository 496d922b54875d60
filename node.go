package gcexec

import "github.com/google/uuid"

// Role tags which interface of its parent a node occupies: the root of a
// write-graph is I, its two possible children are A and B.
type Role int

const (
	RoleI Role = iota
	RoleA
	RoleB
)

func (r Role) destRow() Row {
	switch r {
	case RoleA:
		return RowA
	case RoleB:
		return RowB
	default:
		return RowI
	}
}

// Node is the mutable scratch the Graph Builder, Line-Budget Scheduler and
// Connection Resolver share for one occurrence of a GC within a
// composition. The same GCRecord may back many Nodes — one per place it
// appears in the tree — each with its own flags and line count.
type Node struct {
	GC     *GCRecord
	Parent *Node
	Role   Role

	GCANode *Node
	GCBNode *Node

	IsCodon bool
	Unknown bool
	Exists  bool
	Assess  bool
	Write   bool
	Terminal bool

	NumLines     int
	FunctionInfo *FunctionInfo
	UID          string

	TerminalConnections []Connection

	localVarCounter int
	fConnectionDone bool // guards one-shot F/L/W control-connection injection

	namedEndpoints map[Endpoint]string // endpoint -> assigned variable name, scoped per written function
}

// newNode allocates a Node with a process-unique diagnostic UID. uuid.New
// is the only source of node identity: two nodes over the same GCRecord at
// different tree positions must never compare equal.
func newNode(gc *GCRecord, parent *Node, role Role) *Node {
	return &Node{
		GC:     gc,
		Parent: parent,
		Role:   role,
		UID:    uuid.NewString(),
		Assess: true,
	}
}

// nextLocal returns the next per-node local-variable ordinal, used by the
// emitter to assign `t{n}` names in program order.
func (n *Node) nextLocal() int {
	v := n.localVarCounter
	n.localVarCounter++
	return v
}

// Endpoint identifies a single interface slot: which node it belongs to,
// which row of that node's interface, the index within the row, and
// whether it has been resolved to a terminal (directly-emittable) value.
// Two endpoints are equal iff all four fields match.
type Endpoint struct {
	Node     *Node
	Row      Row
	Index    int
	Terminal bool
}

// Connection is one resolved wire: a terminal source feeding a terminal
// destination, carrying the variable name the emitter assigned to the
// source. VarName is populated by NameConnections, empty before that.
type Connection struct {
	Src     Endpoint
	Dst     Endpoint
	VarName string
}
