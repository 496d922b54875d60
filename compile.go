package gcexec

import (
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// CompiledFunction is the installed, callable form of one emitted function.
// Go has no runtime eval: in place of substituting a freshly generated
// source file in, Compile builds an equivalent small bytecode program —
// one instruction per terminal node, each either a memoised expr-lang
// program (codons) or a call into another node's already-installed
// CompiledFunction.
type CompiledFunction interface {
	Call(args []int64) ([]int64, error)
}

// instruction is one step of a compiled function: either evaluate a
// codon's expr-lang program, or call another installed function, and
// bind the result(s) into the running environment under their display
// names. outputs follows the same "_" discard convention as the text ABI.
type instruction struct {
	isCodon bool
	program *vm.Program
	callee  *FunctionInfo
	args    []string
	outputs []string
}

// runtimeFunc is the CompiledFunction produced by Compile.
type runtimeFunc struct {
	numInputs    int
	instructions []instruction
	outputNames  []string
	builtins     map[string]interface{}
}

// Compile builds the executable form of root's emitted function. It shares
// NameConnections and substituteTemplate with EmitText so the bytecode and
// the displayed source are always wired identically. builtins supplies the
// expr-lang environment entries codon templates may call (e.g. "rand64");
// it is captured once here rather than looked up per Call.
func Compile(root *Node, builtins map[string]interface{}) (CompiledFunction, error) {
	if err := NameConnections(root); err != nil {
		return nil, err
	}
	destNames := destNameMap(root)

	var instructions []instruction
	it := NewCodeIterator(root)
	for n := it.Next(); n != nil; n = it.Next() {
		if n == root || !n.Terminal {
			continue
		}

		outs := outputNamesFor(root, n)

		if n.IsCodon {
			text, err := substituteTemplate(n.GC.Inline, n, destNames)
			if err != nil {
				return nil, err
			}
			prog, err := expr.Compile(text, expr.AllowUndefinedVariables())
			if err != nil {
				return nil, (&ExecError{Kind: EmissionFailure, Message: "codon template failed to compile: " + err.Error(), Cause: err}).withNode(n)
			}
			instructions = append(instructions, instruction{isCodon: true, program: prog, outputs: outs})
			continue
		}

		if n.FunctionInfo == nil {
			return nil, (&ExecError{Kind: InvalidComposition, Message: "terminal call node has no installed function"}).withNode(n)
		}
		args := make([]string, n.GC.NumInputs)
		for idx := range args {
			name, ok := destNames[Endpoint{Node: n, Row: RowI, Index: idx, Terminal: true}]
			if !ok {
				return nil, (&ExecError{Kind: UnreachableSource, Message: "call node input has no resolved source"}).withNode(n).withRow(RowI)
			}
			args[idx] = name
		}
		instructions = append(instructions, instruction{isCodon: false, callee: n.FunctionInfo, args: args, outputs: outs})
	}

	outNames := make([]string, root.GC.NumOutputs)
	for k := range outNames {
		name, ok := destNames[Endpoint{Node: root, Row: RowO, Index: k, Terminal: true}]
		if !ok {
			return nil, (&ExecError{Kind: InvalidComposition, Message: "function output has no assigned source"}).withNode(root).withRow(RowO)
		}
		outNames[k] = name
	}

	return &runtimeFunc{numInputs: root.GC.NumInputs, instructions: instructions, outputNames: outNames, builtins: builtins}, nil
}

// Call runs the compiled instruction program against args and returns the
// function's outputs in declaration order.
func (f *runtimeFunc) Call(args []int64) ([]int64, error) {
	if len(args) != f.numInputs {
		return nil, newErr(InvalidComposition, "argument count does not match function's input count")
	}

	env := make(map[string]interface{}, len(f.builtins)+1)
	for k, v := range f.builtins {
		env[k] = v
	}
	env["i"] = args

	for _, ins := range f.instructions {
		if ins.isCodon {
			result, err := expr.Run(ins.program, env)
			if err != nil {
				return nil, &ExecError{Kind: EmissionFailure, Message: err.Error(), Cause: err}
			}
			v, ok := toInt64(result)
			if !ok {
				return nil, newErr(EmissionFailure, "codon expression did not evaluate to an integer")
			}
			if len(ins.outputs) > 0 && ins.outputs[0] != "_" {
				env[ins.outputs[0]] = v
			}
			continue
		}

		callArgs := make([]int64, len(ins.args))
		for i, name := range ins.args {
			v, err := resolveVar(env, name)
			if err != nil {
				return nil, err
			}
			callArgs[i] = v
		}
		results, err := ins.callee.Callable.Call(callArgs)
		if err != nil {
			return nil, err
		}
		for i, name := range ins.outputs {
			if name == "_" || i >= len(results) {
				continue
			}
			env[name] = results[i]
		}
	}

	out := make([]int64, len(f.outputNames))
	for i, name := range f.outputNames {
		v, err := resolveVar(env, name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// resolveVar reads a display-named variable out of a running environment.
// Names of the form "i[K]" index the function's own input array directly
// rather than a separate env entry, matching how the same names are used
// in the textual ABI.
func resolveVar(env map[string]interface{}, name string) (int64, error) {
	if strings.HasPrefix(name, "i[") && strings.HasSuffix(name, "]") {
		idx, err := strconv.Atoi(name[2 : len(name)-1])
		if err != nil {
			return 0, newErr(InvalidComposition, "malformed input reference "+name)
		}
		args, _ := env["i"].([]int64)
		if idx < 0 || idx >= len(args) {
			return 0, newErr(InvalidComposition, "input index out of range: "+name)
		}
		return args[idx], nil
	}
	v, ok := env[name]
	if !ok {
		return 0, newErr(EmissionFailure, "unresolved variable "+name)
	}
	iv, ok := toInt64(v)
	if !ok {
		return 0, newErr(EmissionFailure, "variable "+name+" is not an integer")
	}
	return iv, nil
}

// toInt64 normalizes the handful of numeric types expr-lang may hand back.
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
