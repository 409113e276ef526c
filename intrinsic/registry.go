package intrinsic

import (
	"github.com/Jaycadox/MathJIT/ast"
	"tinygo.org/x/go-llvm"
)

// Descriptor is the {name, proto, eval_interp, emit_jit} triple of §3.
type Descriptor struct {
	Name  string
	Proto Proto

	// EvalInterp evaluates the intrinsic for the tree-walking interpreter.
	// args are already-evaluated operand values; for sum they are
	// [start, stop, step] per §4.3.
	EvalInterp func(ctx InterpContext, args []float64) (float64, error)

	// EmitJIT emits LLVM IR for the intrinsic. args are the raw,
	// unevaluated operand expressions: sum needs them as MathOp rather
	// than precomputed values because it builds a loop around them.
	EmitJIT func(ctx JITContext, args []ast.MathOp) (llvm.Value, error)
}

// Registry is the table of built-in functions, keyed by name (C4).
type Registry struct {
	descriptors map[string]*Descriptor
}

// NewRegistry builds the fixed startup set: sqrt/1, sin/1, cos/1, pi/0,
// sum/3.
func NewRegistry() *Registry {
	r := &Registry{descriptors: make(map[string]*Descriptor)}
	r.register(sqrtDescriptor())
	r.register(sinDescriptor())
	r.register(cosDescriptor())
	r.register(piDescriptor())
	r.register(sumDescriptor())
	return r
}

func (r *Registry) register(d *Descriptor) {
	r.descriptors[d.Name] = d
}

// Lookup returns the descriptor for name, if it names an intrinsic.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Clone returns an independent copy of the registry. Descriptors are
// stateless function triples, so a shallow copy of the table is
// sufficient; this lets the JIT code generator hold its own registry
// instance distinct from the one the parser uses for arity-checking
// (§9 "instances must be independently replicable").
func (r *Registry) Clone() *Registry {
	clone := &Registry{descriptors: make(map[string]*Descriptor, len(r.descriptors))}
	for name, d := range r.descriptors {
		copied := *d
		clone.descriptors[name] = &copied
	}
	return clone
}
