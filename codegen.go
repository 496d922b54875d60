package gcexec

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// codonPlaceholder matches the "{iK}" input references a codon's Inline
// template substitutes before the template doubles as both Go source text
// and an expr-lang expression.
var codonPlaceholder = regexp.MustCompile(`\{i(\d+)\}`)

// NameConnections assigns a variable name to every terminal source endpoint
// reachable from root's resolved connections, per the naming rule: reuse a
// source's existing name if already assigned; otherwise i[k] for root's own
// inputs, o{k} for a source wired straight to output k, t{n} for everything
// else. It is idempotent — calling it again after names are assigned does
// nothing, since every source is already present in root.namedEndpoints.
func NameConnections(root *Node) error {
	conns := root.TerminalConnections
	sort.SliceStable(conns, func(i, j int) bool {
		return namingRank(conns[i]) < namingRank(conns[j])
	})

	if root.namedEndpoints == nil {
		root.namedEndpoints = make(map[Endpoint]string, len(conns))
	}

	for i := range conns {
		c := &conns[i]
		if name, ok := root.namedEndpoints[c.Src]; ok {
			c.VarName = name
			continue
		}

		var name string
		switch {
		case c.Src.Row == RowI:
			name = fmt.Sprintf("i[%d]", c.Src.Index)
		case c.Dst.Row == RowO:
			name = fmt.Sprintf("o%d", c.Dst.Index)
		default:
			n := root.nextLocal()
			if n >= 99999 {
				return (&ExecError{Kind: LimitExceeded, Message: "function would exceed 99,999 temporaries"}).withNode(root)
			}
			name = fmt.Sprintf("t%d", n)
		}

		root.namedEndpoints[c.Src] = name
		c.VarName = name
	}

	root.TerminalConnections = conns
	return nil
}

// namingRank buckets a connection into the three-way priority the naming
// rule sorts by: root-input sources first, then sources wired straight to
// an output, then everything else. Stable sort keeps original discovery
// order within a bucket.
func namingRank(c Connection) int {
	switch {
	case c.Src.Row == RowI:
		return 0
	case c.Dst.Row == RowO:
		return 1
	default:
		return 2
	}
}

// destNameMap indexes a resolved function's connections by destination, so
// emission can look up "what feeds this node's input k" in O(1).
func destNameMap(root *Node) map[Endpoint]string {
	m := make(map[Endpoint]string, len(root.TerminalConnections))
	for _, c := range root.TerminalConnections {
		m[c.Dst] = c.VarName
	}
	return m
}

// outputNamesFor returns the display name bound to each of n's own outputs,
// or "_" for an output no connection ever consumes.
func outputNamesFor(root, n *Node) []string {
	names := make([]string, n.GC.NumOutputs)
	for idx := range names {
		if name, ok := root.namedEndpoints[Endpoint{Node: n, Row: RowO, Index: idx, Terminal: true}]; ok {
			names[idx] = name
		} else {
			names[idx] = "_"
		}
	}
	return names
}

// substituteTemplate replaces every {iK} placeholder in a codon's Inline
// template with the display name feeding that codon occurrence's input K.
// The result is valid both as the Go source line's right-hand side and,
// unmodified, as the expr-lang expression the runtime evaluates.
func substituteTemplate(tmpl string, node *Node, destNames map[Endpoint]string) (string, error) {
	var failure error
	out := codonPlaceholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		idx, err := strconv.Atoi(m[2 : len(m)-1])
		if err != nil {
			failure = (&ExecError{Kind: InvalidComposition, Message: "malformed codon placeholder " + m}).withNode(node)
			return m
		}
		name, ok := destNames[Endpoint{Node: node, Row: RowI, Index: idx, Terminal: true}]
		if !ok {
			failure = (&ExecError{Kind: UnreachableSource, Message: "codon input placeholder has no resolved source"}).withNode(node).withRow(RowI)
			return m
		}
		return name
	})
	if failure != nil {
		return "", failure
	}
	return out, nil
}

// EmitText renders root's emitted function as Go source text, matching the
// executor's textual ABI: an array-of-int64 input parameter, named int64
// return values, one statement per terminal non-root node in program
// order, and a trailing return. hints controls whether the Signature/
// Optimisations docstring block is included.
func EmitText(root *Node, hints bool) (string, error) {
	if err := NameConnections(root); err != nil {
		return "", err
	}
	destNames := destNameMap(root)

	var sb strings.Builder
	sb.WriteString("func ")
	sb.WriteString(root.FunctionInfo.Name())
	sb.WriteString("(")
	if root.GC.NumInputs > 0 {
		fmt.Fprintf(&sb, "i [%d]int64", root.GC.NumInputs)
	}
	sb.WriteString(")")
	if root.GC.NumOutputs > 0 {
		sb.WriteString(" (")
		for k := 0; k < root.GC.NumOutputs; k++ {
			if k > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "o%d", k)
		}
		sb.WriteString(" int64)")
	}
	sb.WriteString(" {\n")

	if hints {
		fmt.Fprintf(&sb, "\t// Signature: %s\n", root.GC.Signature.String())
		sb.WriteString("\t// Optimisations: none\n")
	}

	it := NewCodeIterator(root)
	for n := it.Next(); n != nil; n = it.Next() {
		if n == root || !n.Terminal {
			continue
		}
		line, err := emitLine(root, n, destNames)
		if err != nil {
			return "", err
		}
		sb.WriteString("\t")
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if root.GC.NumOutputs > 0 {
		sb.WriteString("\treturn ")
		for k := 0; k < root.GC.NumOutputs; k++ {
			if k > 0 {
				sb.WriteString(", ")
			}
			name, ok := destNames[Endpoint{Node: root, Row: RowO, Index: k, Terminal: true}]
			if !ok {
				return "", (&ExecError{Kind: InvalidComposition, Message: "function output has no assigned source"}).withNode(root).withRow(RowO)
			}
			sb.WriteString(name)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("}")
	return sb.String(), nil
}

// emitLine renders a single terminal node's statement: a substituted codon
// template, or a call into an already-installed function. A node with no
// consumed output has every left-hand slot set to "_"; a node with zero
// outputs is emitted as a bare expression statement.
func emitLine(root, n *Node, destNames map[Endpoint]string) (string, error) {
	lhs := lhsFor(root, n)

	if n.IsCodon {
		rhs, err := substituteTemplate(n.GC.Inline, n, destNames)
		if err != nil {
			return "", err
		}
		if lhs == "" {
			return rhs, nil
		}
		return lhs + " = " + rhs, nil
	}

	if n.FunctionInfo == nil {
		return "", (&ExecError{Kind: InvalidComposition, Message: "terminal call node has no installed function"}).withNode(n)
	}
	args := make([]string, n.GC.NumInputs)
	for idx := range args {
		name, ok := destNames[Endpoint{Node: n, Row: RowI, Index: idx, Terminal: true}]
		if !ok {
			return "", (&ExecError{Kind: UnreachableSource, Message: "call node input has no resolved source"}).withNode(n).withRow(RowI)
		}
		args[idx] = name
	}
	call := n.FunctionInfo.CallString(args)
	if lhs == "" {
		return call, nil
	}
	return lhs + " = " + call, nil
}

func lhsFor(root, n *Node) string {
	if n.GC.NumOutputs == 0 {
		return ""
	}
	names := outputNamesFor(root, n)
	return strings.Join(names, ", ")
}
