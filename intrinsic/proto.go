package intrinsic

// Proto is an intrinsic's arity prototype, checked by the parser at call
// sites (§4.2) and by the interpreter when dispatching a Call node. The
// JIT generator does not check it again.
type Proto struct {
	ArgCount int
}
