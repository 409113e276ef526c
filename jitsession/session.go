// Package jitsession implements C7, the JIT execution session: it owns
// the LLVM context lifetime across repeated evaluations, restores or
// creates a module, compiles changed or missing user functions through
// jitgen, runs the optimization pipeline, and either executes the
// wrapped top-level expression or caches the module's bitcode for the
// next evaluation.
package jitsession

import (
	"fmt"
	"os"

	"github.com/Jaycadox/MathJIT/ast"
	"github.com/Jaycadox/MathJIT/environment"
	"github.com/Jaycadox/MathJIT/evalcore"
	"github.com/Jaycadox/MathJIT/intrinsic"
	"github.com/Jaycadox/MathJIT/jitgen"
	"github.com/Jaycadox/MathJIT/timings"
	"tinygo.org/x/go-llvm"
)

// optimizationPasses is the exact new-pass-manager pipeline named by
// §4.6/§6: instruction combining and simplification passes followed by
// mem2reg, run with loop interleaving, SLP vectorization, loop
// unrolling/vectorization, and function merging all enabled.
const optimizationPasses = "instcombine,lcssa,jump-threading,loop-reduce," +
	"loop-rotate,loop-simplify,loop-unroll,sroa,sccp,sink,reassociate,gvn," +
	"simplifycfg,mem2reg"

func init() {
	llvm.InitializeAllTargetInfos()
	llvm.InitializeAllTargetMCs()
	llvm.InitializeAllAsmParsers()
	llvm.InitializeAllAsmPrinters()
	llvm.InitializeAllTargets()
}

// Session is the JIT backend, implementing evalcore.Backend (§4.6). The
// LLVM context lives for the session's entire process lifetime; its
// module is either restored from an in-memory bitcode cache or created
// fresh each evaluation, and a new execution engine is attached to it
// every time (§7 rules out a persistent cross-process cache, so the
// cache is a byte buffer held in memory, never written to disk).
type Session struct {
	ctx      llvm.Context
	env      *environment.Environment
	registry *intrinsic.Registry

	module    llvm.Module
	engine    llvm.ExecutionEngine
	hasEngine bool

	// cachedBitcode is the last successfully built module, serialized, or
	// nil if the previous evaluation changed a function and invalidated
	// it (§4.6 step 6).
	cachedBitcode []byte

	Verbose bool
}

// New creates a JIT session with its own environment and intrinsic
// registry, independent of any interpreter.Interpreter instance.
func New() *Session {
	ctx := llvm.NewContext()
	return &Session{
		ctx:      ctx,
		env:      environment.New(),
		registry: intrinsic.NewRegistry(),
		module:   ctx.NewModule("mathjit"),
	}
}

// Close releases the session's LLVM resources. Safe to call once, after
// the session is no longer needed.
func (s *Session) Close() {
	if s.hasEngine {
		s.engine.Dispose()
	} else {
		s.module.Dispose()
	}
	s.ctx.Dispose()
}

// Eval implements evalcore.Backend (§4.6 state machine: Idle ->
// BuildingModule -> Compiling -> Optimizing -> (Executing|Caching) ->
// Idle).
func (s *Session) Eval(out ast.ParseOutput) (resp evalcore.Response, t *timings.Timings, err error) {
	t = timings.Start()
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()

	s.env.Remove(ast.ReplFunctionName)

	// changed tracks the names of functions that already existed in the
	// environment before this round and are being redefined now (§4.6
	// step 3 "changed set"). _repl was just removed above, so installing
	// the wrapped Body below is always a fresh insertion, never a change
	// — a pure expression evaluation never invalidates the cache.
	changed := make(map[string]bool)
	isBody := false
	switch v := out.(type) {
	case ast.Functions:
		for _, fn := range v.Defs {
			if _, existed := s.env.Lookup(fn.Name); existed {
				changed[fn.Name] = true
			}
			s.env.Define(fn)
		}
	case ast.Body:
		isBody = true
		s.env.Define(ast.WrapAsRepl(v.Op))
	default:
		panic(fmt.Errorf("unsupported parse output %T", out))
	}
	t.Lap("install")

	if err := s.rebuild(changed); err != nil {
		return evalcore.Response{}, t, err
	}
	t.Lap("compile")

	if err := s.optimize(); err != nil {
		return evalcore.Response{}, t, err
	}
	t.Lap("optimize")

	if s.Verbose {
		fmt.Fprintln(os.Stderr, s.module.String())
	}

	if err := s.buildEngine(); err != nil {
		return evalcore.Response{}, t, err
	}
	t.Lap("link")

	if isBody {
		replFn := s.module.NamedFunction(ast.ReplFunctionName)
		result := s.engine.RunFunction(replFn, nil)
		value := result.Float(s.ctx.DoubleType())
		t.Lap("execute")
		return evalcore.ValueResponse(value), t, nil
	}

	// §4.6 step 6: only a Functions evaluation reaches the caching rule —
	// a Body evaluation returns above and leaves the cache untouched.
	if len(changed) == 0 {
		buf := llvm.WriteBitcodeToMemoryBuffer(s.module)
		s.cachedBitcode = append([]byte(nil), buf.Bytes()...)
		buf.Dispose()
	} else {
		s.cachedBitcode = nil
	}

	return evalcore.OkResponse(), t, nil
}

// rebuild restores the module from the bitcode cache if one is present,
// or creates a fresh one otherwise, then compiles every function
// currently defined in the environment that either changed this round or
// is not already present in the restored module, in first-definition
// order. A function may only call another function that was defined
// earlier in the same environment (§9): recompiling in definition order
// guarantees an earlier function is already declared in the module by
// the time a later one calls it.
func (s *Session) rebuild(changed map[string]bool) error {
	if s.hasEngine {
		s.engine.Dispose()
		s.hasEngine = false
	} else {
		s.module.Dispose()
	}

	module, restored := s.restoreModule()
	s.module = module

	cg := jitgen.New(s.ctx, s.module, s.env, s.registry)
	defer cg.Dispose()

	for _, name := range s.env.OrderedNames() {
		fn, ok := s.env.Lookup(name)
		if !ok {
			continue
		}
		if restored && !changed[name] && !s.module.NamedFunction(name).IsNil() {
			continue
		}
		if _, err := cg.Compile(fn); err != nil {
			return fmt.Errorf("while compiling %q: %w", name, err)
		}
	}
	return nil
}

// restoreModule parses the bitcode cache into a module under the
// session's context (§4.6 step 2), falling back to a freshly created
// module when there is no cache or the cache fails to parse. The second
// return value reports whether the module came from the cache.
func (s *Session) restoreModule() (llvm.Module, bool) {
	if s.cachedBitcode == nil {
		return s.ctx.NewModule("mathjit"), false
	}
	buf := llvm.NewMemoryBufferFromMemoryRangeCopy(s.cachedBitcode, "cached module")
	module, err := s.ctx.ParseBitcode(buf)
	if err != nil {
		return s.ctx.NewModule("mathjit"), false
	}
	return module, true
}

// optimize runs the named pass pipeline against the freshly built
// module, targeting the host machine (§4.6/§6).
func (s *Session) optimize() error {
	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return fmt.Errorf("resolving target triple %q: %w", triple, err)
	}

	tm := target.CreateTargetMachine(triple, "generic", "",
		llvm.CodeGenLevelAggressive,
		llvm.RelocDefault,
		llvm.CodeModelDefault)
	defer tm.Dispose()

	s.module.SetTarget(triple)

	options := llvm.NewPassBuilderOptions()
	defer options.Dispose()
	options.SetLoopInterleaving(true)
	options.SetLoopVectorization(true)
	options.SetLoopUnrolling(true)
	options.SetSLPVectorization(true)
	options.SetMergeFunctions(true)

	if err := s.module.RunPasses(optimizationPasses, tm, options); err != nil {
		return fmt.Errorf("running optimization pipeline: %w", err)
	}
	return nil
}

// buildEngine creates a fresh MCJIT execution engine over the current
// module at aggressive optimization (§4.6).
func (s *Session) buildEngine() error {
	options := llvm.NewMCJITCompilerOptions()
	options.SetMCJITOptimizationLevel(3)

	engine, err := llvm.NewMCJITCompiler(s.module, options)
	if err != nil {
		return fmt.Errorf("creating execution engine: %w", err)
	}
	s.engine = engine
	s.hasEngine = true
	return nil
}

// Disassembly returns the current module's target assembly.
func (s *Session) Disassembly() (string, error) {
	triple := llvm.DefaultTargetTriple()
	target, err := llvm.GetTargetFromTriple(triple)
	if err != nil {
		return "", fmt.Errorf("resolving target triple %q: %w", triple, err)
	}
	tm := target.CreateTargetMachine(triple, "generic", "",
		llvm.CodeGenLevelAggressive,
		llvm.RelocDefault,
		llvm.CodeModelDefault)
	defer tm.Dispose()

	buf, err := tm.EmitToMemoryBuffer(s.module, llvm.AssemblyFile)
	if err != nil {
		return "", fmt.Errorf("emitting assembly: %w", err)
	}
	return string(buf.Bytes()), nil
}

// IRDump returns the current module's textual LLVM IR.
func (s *Session) IRDump() string {
	return s.module.String()
}
