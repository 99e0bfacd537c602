package vm

import (
	"encoding/binary"
	"fmt"
)

/*
Assembler builds a validation library from symbolic instructions. Jump and
call targets are labels resolved to byte offsets when the program is
assembled, and subroutine starts are declared as named entry points, so no
code offset is ever maintained by hand.
*/
type Assembler struct {
	code    []byte
	labels  map[string]uint16
	entries map[string]uint16
	fixups  []fixup
	errs    []error
}

type fixup struct {
	pos   int // position of the 2-byte placeholder in code
	label string
}

func NewAssembler() *Assembler {
	return &Assembler{
		labels:  map[string]uint16{},
		entries: map[string]uint16{},
	}
}

// Entry declares a named subroutine entry point at the current offset. An
// entry point is also usable as a jump label.
func (a *Assembler) Entry(name string) {
	if _, ok := a.entries[name]; ok {
		a.errorf("duplicate entry point %q", name)
		return
	}
	a.entries[name] = uint16(len(a.code))
	a.Label(name)
}

// Label declares a jump target at the current offset.
func (a *Assembler) Label(name string) {
	if _, ok := a.labels[name]; ok {
		a.errorf("duplicate label %q", name)
		return
	}
	a.labels[name] = uint16(len(a.code))
}

// Put loads an immediate into an integer register. The immediate operand is
// encoded with the width of the register bank and must fit it.
func (a *Assembler) Put(dst Reg, v uint64) {
	width := immWidth(dst.Bank())
	if width == 0 {
		a.errorf("put: %s is not an integer register", dst)
		return
	}
	if width < 8 && v >= 1<<(8*width) {
		a.errorf("put: value %d does not fit %s", v, dst)
		return
	}
	a.emit(OpPut, byte(dst))
	switch width {
	case 1:
		a.code = append(a.code, byte(v))
	case 2:
		a.code = binary.BigEndian.AppendUint16(a.code, uint16(v))
	case 4:
		a.code = binary.BigEndian.AppendUint32(a.code, uint32(v))
	case 8:
		a.code = binary.BigEndian.AppendUint64(a.code, v)
	}
}

// Spy copies the low bits of a wide register into a 32- or 64-bit register.
func (a *Assembler) Spy(dst, src Reg) {
	if dst.Bank() != BankA32 && dst.Bank() != BankA64 {
		a.errorf("spy: destination %s must be a 32- or 64-bit register", dst)
	}
	if src.Bank() != BankW {
		a.errorf("spy: source %s must be a wide register", src)
	}
	a.emit(OpSpy, byte(dst), byte(src))
}

// Ldg loads a global state blob. The state type selector and the instance
// index are both read from 16-bit registers, so subroutines stay
// parameterizable over the state type they operate on.
func (a *Assembler) Ldg(st, idx, dst Reg) { a.load(OpLdg, "ldg", st, idx, dst) }

// Ldi loads the blob of a consumed (input) assignment.
func (a *Assembler) Ldi(st, idx, dst Reg) { a.load(OpLdi, "ldi", st, idx, dst) }

// Ldo loads the blob of a produced (output) assignment.
func (a *Assembler) Ldo(st, idx, dst Reg) { a.load(OpLdo, "ldo", st, idx, dst) }

// Ldp loads the previous state of a consumed assignment.
func (a *Assembler) Ldp(st, idx, dst Reg) { a.load(OpLdp, "ldp", st, idx, dst) }

// Ldm loads a metadata blob of the validated operation. A metadata slot
// carries at most one value, so there is no index register.
func (a *Assembler) Ldm(mt, dst Reg) {
	if mt.Bank() != BankA16 {
		a.errorf("ldm: metadata type must be a 16-bit register")
	}
	if dst.Bank() != BankS {
		a.errorf("ldm: destination %s must be a blob register", dst)
	}
	a.emit(OpLdm, byte(mt), byte(dst))
}

func (a *Assembler) load(op byte, name string, st, idx, dst Reg) {
	if st.Bank() != BankA16 || idx.Bank() != BankA16 {
		a.errorf("%s: state type and index must be 16-bit registers", name)
	}
	if dst.Bank() != BankS {
		a.errorf("%s: destination %s must be a blob register", name, dst)
	}
	a.emit(op, byte(st), byte(idx), byte(dst))
}

// Cnti puts the count of input instances of a state type into a 16-bit register.
func (a *Assembler) Cnti(st, dst Reg) { a.count(OpCnti, "cnti", st, dst) }

// Cnto puts the count of output instances of a state type into a 16-bit register.
func (a *Assembler) Cnto(st, dst Reg) { a.count(OpCnto, "cnto", st, dst) }

func (a *Assembler) count(op byte, name string, st, dst Reg) {
	if st.Bank() != BankA16 || dst.Bank() != BankA16 {
		a.errorf("%s: operands must be 16-bit registers", name)
	}
	a.emit(op, byte(st), byte(dst))
}

// Extr extracts a little-endian field of the given byte width from a blob.
// The byte offset is read from a 16-bit register. Valid widths and their
// destination banks: 4 -> a32, 8 -> a64, 16 -> w.
func (a *Assembler) Extr(src Reg, width int, off, dst Reg) {
	if src.Bank() != BankS {
		a.errorf("extr: source %s must be a blob register", src)
	}
	if off.Bank() != BankA16 {
		a.errorf("extr: offset %s must be a 16-bit register", off)
	}
	switch {
	case width == 4 && dst.Bank() == BankA32:
	case width == 8 && dst.Bank() == BankA64:
	case width == 16 && dst.Bank() == BankW:
	default:
		a.errorf("extr: width %d incompatible with destination %s", width, dst)
	}
	a.emit(OpExtr, byte(src), byte(width), byte(off), byte(dst))
}

// Addo adds src into dst with an overflow check. Overflow halts the program
// with a validation failure.
func (a *Assembler) Addo(dst, src Reg) {
	if dst.Bank() != BankA64 || src.Bank() != BankA64 {
		a.errorf("addo: operands must be 64-bit registers")
	}
	a.emit(OpAddo, byte(dst), byte(src))
}

// Dec decrements an integer register. Decrementing zero is a program trap.
func (a *Assembler) Dec(r Reg) {
	if immWidth(r.Bank()) == 0 {
		a.errorf("dec: %s is not an integer register", r)
	}
	a.emit(OpDec, byte(r))
}

// Eq compares two registers of the same bank and sets the status flag.
func (a *Assembler) Eq(x, y Reg) {
	if x.Bank() != y.Bank() {
		a.errorf("eq: %s and %s are from different banks", x, y)
	}
	if immWidth(x.Bank()) == 0 {
		a.errorf("eq: %s is not an integer register", x)
	}
	a.emit(OpEq, byte(x), byte(y))
}

func (a *Assembler) Test() { a.emit(OpTest) }
func (a *Assembler) Ret()  { a.emit(OpRet) }
func (a *Assembler) Fail() { a.emit(OpFail) }

func (a *Assembler) Jmp(label string) { a.branch(OpJmp, label) }
func (a *Assembler) Jif(label string) { a.branch(OpJif, label) }

func (a *Assembler) Call(label string) { a.branch(OpCall, label) }

// Jzr jumps to the label if the integer register is zero.
func (a *Assembler) Jzr(r Reg, label string) {
	if immWidth(r.Bank()) == 0 {
		a.errorf("jzr: %s is not an integer register", r)
	}
	a.emit(OpJzr, byte(r))
	a.fixups = append(a.fixups, fixup{pos: len(a.code), label: label})
	a.code = append(a.code, 0, 0)
}

func (a *Assembler) branch(op byte, label string) {
	a.emit(op)
	a.fixups = append(a.fixups, fixup{pos: len(a.code), label: label})
	a.code = append(a.code, 0, 0)
}

// Assemble resolves all labels and returns the immutable library. At least
// one entry point must have been declared.
func (a *Assembler) Assemble() (*Lib, error) {
	for _, f := range a.fixups {
		offset, ok := a.labels[f.label]
		if !ok {
			a.errorf("undefined label %q", f.label)
			continue
		}
		binary.BigEndian.PutUint16(a.code[f.pos:], offset)
	}
	if len(a.entries) == 0 {
		a.errorf("no entry points declared")
	}
	if len(a.errs) > 0 {
		return nil, fmt.Errorf("assembling library: %w", a.errs[0])
	}
	entries := make(map[string]uint16, len(a.entries))
	for name, offset := range a.entries {
		entries[name] = offset
	}
	return &Lib{code: a.code, entries: entries}, nil
}

// MustAssemble is Assemble for the init-time programs shipped with the module
// where a malformed program is a programming error.
func MustAssemble(a *Assembler) *Lib {
	lib, err := a.Assemble()
	if err != nil {
		panic(err)
	}
	return lib
}

func (a *Assembler) emit(b ...byte) {
	a.code = append(a.code, b...)
}

func (a *Assembler) errorf(format string, args ...any) {
	a.errs = append(a.errs, fmt.Errorf(format, args...))
}
