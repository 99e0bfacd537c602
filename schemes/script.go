package schemes

import (
	"github.com/tokenschema/tokenschema-go-base/vm"
)

/*
Register conventions of the shipped validation programs:

	a8[0]   errno raised on the next failing check
	a16[15] state-type selector argument of the sum subroutines
	a16[14] instance index scratch
	a16[13] loop counter scratch
	a16[12] extraction offset scratch
	a64[0]  sum of inputs / left comparison operand
	a64[1]  sum of outputs / right comparison operand
	a64[14] extraction scratch
	s[14]   global state blob scratch
	s[15]   assignment blob scratch

Committed amounts are opaque blobs carrying their 64-bit little-endian
amount field at byte offset 0; plain declared amounts in global state use
the same layout.
*/
const (
	// AmountFieldOffset is the byte offset of the 64-bit amount field in a
	// committed amount or declared amount blob.
	AmountFieldOffset = 0
	// TokenIndexOffset is the byte offset of the 32-bit token index in an
	// allocation or token metadata blob.
	TokenIndexOffset = 0
	// FractionOffset is the byte offset of the 64-bit owned fraction in an
	// allocation blob.
	FractionOffset = 4
)

/*
EmitSumSubroutines appends the reusable arithmetic subroutine library to a
program under assembly: "sum.inputs" and "sum.outputs" iterate the exact,
statically known count of instances of the selected state type by
descending index, extract the amount field from each blob and accumulate
with a checked add. The accumulation overflowing 64 bits fails validation
with whatever errno the caller armed, so callers arm the overflow errno
before calling and re-arm the comparison errno after.

	sum.inputs:  selector a16[15] -> a64[0]
	sum.outputs: selector a16[15] -> a64[1]
*/
func EmitSumSubroutines(a *vm.Assembler) {
	emitSum(a, "sum.inputs", true, vm.A64(0))
	emitSum(a, "sum.outputs", false, vm.A64(1))
}

func emitSum(a *vm.Assembler, name string, inputs bool, acc vm.Reg) {
	loop, done := name+".loop", name+".done"

	a.Entry(name)
	a.Put(acc, 0)
	a.Put(vm.A16(12), AmountFieldOffset)
	if inputs {
		a.Cnti(vm.A16(15), vm.A16(13))
	} else {
		a.Cnto(vm.A16(15), vm.A16(13))
	}
	a.Label(loop)
	a.Jzr(vm.A16(13), done)
	a.Dec(vm.A16(13))
	if inputs {
		a.Ldi(vm.A16(15), vm.A16(13), vm.S(15))
	} else {
		a.Ldo(vm.A16(15), vm.A16(13), vm.S(15))
	}
	a.Extr(vm.S(15), 8, vm.A16(12), vm.A64(14))
	a.Addo(acc, vm.A64(14))
	a.Jmp(loop)
	a.Label(done)
	a.Ret()
}

// EmitLoadGlobalAmount appends instructions reading the declared amount of
// a global slot (instance 0) into the destination 64-bit register.
func EmitLoadGlobalAmount(a *vm.Assembler, slot uint64, dst vm.Reg) {
	a.Put(vm.A16(14), 0)
	a.Put(vm.A16(15), slot)
	a.Ldg(vm.A16(15), vm.A16(14), vm.S(14))
	a.Put(vm.A16(12), AmountFieldOffset)
	a.Extr(vm.S(14), 8, vm.A16(12), dst)
}

// EmitLoadMetaAmount appends instructions reading the declared amount
// carried in an operation metadata slot into the destination 64-bit
// register. A missing slot fails with whatever errno the caller armed.
func EmitLoadMetaAmount(a *vm.Assembler, slot uint64, dst vm.Reg) {
	a.Put(vm.A16(15), slot)
	a.Ldm(vm.A16(15), vm.S(14))
	a.Put(vm.A16(12), AmountFieldOffset)
	a.Extr(vm.S(14), 8, vm.A16(12), dst)
}
