package codegen

import "fmt"

// Verify checks the function's structural invariants: a defined function
// has an entry block, every block ends in exactly one terminator, no
// instruction follows a terminator, and phi edges reference blocks of
// the same function. Lowering bugs surface here instead of as undefined
// behavior at execution time.
func (f *FnValue) Verify() error {
	if f.IsDeclaration() {
		return nil
	}
	inFn := make(map[*BasicBlock]bool, len(f.Blocks))
	for _, bb := range f.Blocks {
		inFn[bb] = true
	}
	for _, bb := range f.Blocks {
		if len(bb.Instrs) == 0 {
			return fmt.Errorf("block %q is empty", bb.Name)
		}
		for i, in := range bb.Instrs {
			if in.IsTerminator() && i != len(bb.Instrs)-1 {
				return fmt.Errorf("block %q has instructions after its terminator", bb.Name)
			}
			if in.Op == OpPhi {
				if len(in.Incoming) == 0 {
					return fmt.Errorf("phi %q in block %q has no incoming edges", in.Name, bb.Name)
				}
				for _, inc := range in.Incoming {
					if !inFn[inc.Block] {
						return fmt.Errorf("phi %q references a block outside function %q", in.Name, f.Name)
					}
				}
			}
			if in.Op == OpCondBr || in.Op == OpBr {
				for _, t := range in.Targets {
					if !inFn[t] {
						return fmt.Errorf("branch in block %q targets a block outside function %q", bb.Name, f.Name)
					}
				}
			}
		}
		if bb.Terminator() == nil {
			return fmt.Errorf("block %q does not end in a terminator", bb.Name)
		}
	}
	return nil
}
