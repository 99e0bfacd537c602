/*
Package vm implements the deterministic register machine executing contract
validation programs, together with the symbolic assembler producing them.

The machine is deliberately small: integer register banks of four widths, a
wide (128-bit) bank, a blob bank holding opaque state values, one status
flag and a call stack. Programs terminate either successfully (top-level
ret), with a validation failure carrying the errno set in a8[0] (fail, a
failed test, a checked-add overflow or a state load miss), or with a trap
for malformed code. Given the same library, entry point and state view the
outcome is always the same.
*/
package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// Failure is the consensus-level "this operation is invalid" outcome of a
// validation program. The errno is a schema-chosen small integer; its
// symbolic name lives in the interface binding, the machine is agnostic to
// its meaning.
type Failure struct {
	Errno uint8
}

func (f *Failure) Error() string {
	return fmt.Sprintf("validation failed with errno %d", f.Errno)
}

func (f *Failure) Is(target error) bool {
	other, ok := target.(*Failure)
	return ok && other.Errno == f.Errno
}

// stepBudget bounds interpretation defensively. Well-formed programs are
// bounded by the exact instance counts of the validated operation and stay
// far below it.
const stepBudget = 1 << 20

const callDepthLimit = 16

type machine struct {
	a8   [16]uint8
	a16  [16]uint16
	a32  [16]uint32
	a64  [16]uint64
	w    [16]uint256.Int
	s    [16][]byte
	st   bool
	view StateView
}

// Run executes the library from the given entry offset against the state
// view. It returns nil on success, *Failure when the program rejects the
// operation and a plain error when the program itself is malformed.
func Run(lib *Lib, offset uint16, view StateView) error {
	if lib == nil {
		return fmt.Errorf("nil library")
	}
	m := &machine{view: view, st: true}
	return m.run(lib.code, offset)
}

func (m *machine) run(code []byte, entry uint16) error {
	pc := int(entry)
	var callStack []int

	for steps := 0; ; steps++ {
		if steps >= stepBudget {
			return fmt.Errorf("program trap: step budget exhausted")
		}
		if pc < 0 || pc >= len(code) {
			return fmt.Errorf("program trap: pc %d out of code bounds", pc)
		}
		op := code[pc]

		switch op {
		case OpFail:
			return &Failure{Errno: m.a8[0]}

		case OpRet:
			if len(callStack) == 0 {
				return nil
			}
			pc = callStack[len(callStack)-1]
			callStack = callStack[:len(callStack)-1]

		case OpJmp:
			target, err := branchTarget(code, pc)
			if err != nil {
				return err
			}
			pc = target

		case OpJif:
			target, err := branchTarget(code, pc)
			if err != nil {
				return err
			}
			if m.st {
				pc = target
			} else {
				pc += 3
			}

		case OpJzr:
			if err := operands(code, pc, 3); err != nil {
				return err
			}
			r := Reg(code[pc+1])
			v, err := m.intValue(r)
			if err != nil {
				return err
			}
			if v == 0 {
				pc = int(binary.BigEndian.Uint16(code[pc+2:]))
			} else {
				pc += 4
			}

		case OpCall:
			target, err := branchTarget(code, pc)
			if err != nil {
				return err
			}
			if len(callStack) >= callDepthLimit {
				return fmt.Errorf("program trap: call depth limit exceeded")
			}
			callStack = append(callStack, pc+3)
			pc = target

		case OpPut:
			if err := operands(code, pc, 1); err != nil {
				return err
			}
			r := Reg(code[pc+1])
			width := immWidth(r.Bank())
			if width == 0 {
				return fmt.Errorf("program trap: put into non-integer register %s", r)
			}
			if err := operands(code, pc, 1+width); err != nil {
				return err
			}
			switch r.Bank() {
			case BankA8:
				m.a8[r.Idx()] = code[pc+2]
			case BankA16:
				m.a16[r.Idx()] = binary.BigEndian.Uint16(code[pc+2:])
			case BankA32:
				m.a32[r.Idx()] = binary.BigEndian.Uint32(code[pc+2:])
			case BankA64:
				m.a64[r.Idx()] = binary.BigEndian.Uint64(code[pc+2:])
			}
			pc += 2 + width

		case OpSpy:
			if err := operands(code, pc, 2); err != nil {
				return err
			}
			dst, src := Reg(code[pc+1]), Reg(code[pc+2])
			if src.Bank() != BankW {
				return fmt.Errorf("program trap: spy source %s is not a wide register", src)
			}
			switch dst.Bank() {
			case BankA32:
				m.a32[dst.Idx()] = uint32(m.w[src.Idx()].Uint64())
			case BankA64:
				m.a64[dst.Idx()] = m.w[src.Idx()].Uint64()
			default:
				return fmt.Errorf("program trap: spy destination %s", dst)
			}
			pc += 3

		case OpLdg, OpLdi, OpLdo, OpLdp:
			if err := operands(code, pc, 3); err != nil {
				return err
			}
			st, idx, dst := Reg(code[pc+1]), Reg(code[pc+2]), Reg(code[pc+3])
			if st.Bank() != BankA16 || idx.Bank() != BankA16 || dst.Bank() != BankS {
				return fmt.Errorf("program trap: bad %s operands", OpName(op))
			}
			stateType := m.a16[st.Idx()]
			i := int(m.a16[idx.Idx()])
			var blob []byte
			var ok bool
			switch op {
			case OpLdg:
				blob, ok = m.view.Global(stateType, i)
			case OpLdi:
				blob, ok = m.view.Input(stateType, i)
			case OpLdo:
				blob, ok = m.view.Output(stateType, i)
			case OpLdp:
				blob, ok = m.view.Prev(stateType, i)
			}
			if !ok {
				// missing state is invalid state, not a trap
				return &Failure{Errno: m.a8[0]}
			}
			m.s[dst.Idx()] = blob
			pc += 4

		case OpLdm:
			if err := operands(code, pc, 2); err != nil {
				return err
			}
			mt, dst := Reg(code[pc+1]), Reg(code[pc+2])
			if mt.Bank() != BankA16 || dst.Bank() != BankS {
				return fmt.Errorf("program trap: bad ldm operands")
			}
			blob, ok := m.view.Meta(m.a16[mt.Idx()])
			if !ok {
				return &Failure{Errno: m.a8[0]}
			}
			m.s[dst.Idx()] = blob
			pc += 3

		case OpCnti, OpCnto:
			if err := operands(code, pc, 2); err != nil {
				return err
			}
			st, dst := Reg(code[pc+1]), Reg(code[pc+2])
			if st.Bank() != BankA16 || dst.Bank() != BankA16 {
				return fmt.Errorf("program trap: bad %s operands", OpName(op))
			}
			stateType := m.a16[st.Idx()]
			if op == OpCnti {
				m.a16[dst.Idx()] = uint16(m.view.InputCount(stateType))
			} else {
				m.a16[dst.Idx()] = uint16(m.view.OutputCount(stateType))
			}
			pc += 3

		case OpExtr:
			if err := operands(code, pc, 4); err != nil {
				return err
			}
			src, width, off, dst := Reg(code[pc+1]), int(code[pc+2]), Reg(code[pc+3]), Reg(code[pc+4])
			if src.Bank() != BankS || off.Bank() != BankA16 {
				return fmt.Errorf("program trap: bad extr operands")
			}
			blob := m.s[src.Idx()]
			o := int(m.a16[off.Idx()])
			if o+width > len(blob) {
				// a blob too short for the declared field is invalid state
				return &Failure{Errno: m.a8[0]}
			}
			field := blob[o : o+width]
			switch {
			case width == 4 && dst.Bank() == BankA32:
				m.a32[dst.Idx()] = binary.LittleEndian.Uint32(field)
			case width == 8 && dst.Bank() == BankA64:
				m.a64[dst.Idx()] = binary.LittleEndian.Uint64(field)
			case width == 16 && dst.Bank() == BankW:
				var be [16]byte
				// field is little-endian on the wire, uint256 wants big-endian
				for i := 0; i < 16; i++ {
					be[15-i] = field[i]
				}
				m.w[dst.Idx()].SetBytes(be[:])
			default:
				return fmt.Errorf("program trap: extr width %d into %s", width, dst)
			}
			pc += 5

		case OpAddo:
			if err := operands(code, pc, 2); err != nil {
				return err
			}
			dst, src := Reg(code[pc+1]), Reg(code[pc+2])
			if dst.Bank() != BankA64 || src.Bank() != BankA64 {
				return fmt.Errorf("program trap: bad addo operands")
			}
			sum, carry := addCarry(m.a64[dst.Idx()], m.a64[src.Idx()])
			if carry {
				return &Failure{Errno: m.a8[0]}
			}
			m.a64[dst.Idx()] = sum
			pc += 3

		case OpDec:
			if err := operands(code, pc, 1); err != nil {
				return err
			}
			r := Reg(code[pc+1])
			v, err := m.intValue(r)
			if err != nil {
				return err
			}
			if v == 0 {
				return fmt.Errorf("program trap: dec underflow on %s", r)
			}
			m.setIntValue(r, v-1)
			pc += 2

		case OpEq:
			if err := operands(code, pc, 2); err != nil {
				return err
			}
			x, y := Reg(code[pc+1]), Reg(code[pc+2])
			if x.Bank() != y.Bank() {
				return fmt.Errorf("program trap: eq across banks")
			}
			vx, err := m.intValue(x)
			if err != nil {
				return err
			}
			vy, err := m.intValue(y)
			if err != nil {
				return err
			}
			m.st = vx == vy
			pc += 3

		case OpTest:
			if !m.st {
				return &Failure{Errno: m.a8[0]}
			}
			pc++

		default:
			return fmt.Errorf("program trap: unknown opcode %#x at %d", op, pc)
		}
	}
}

func (m *machine) intValue(r Reg) (uint64, error) {
	switch r.Bank() {
	case BankA8:
		return uint64(m.a8[r.Idx()]), nil
	case BankA16:
		return uint64(m.a16[r.Idx()]), nil
	case BankA32:
		return uint64(m.a32[r.Idx()]), nil
	case BankA64:
		return m.a64[r.Idx()], nil
	}
	return 0, fmt.Errorf("program trap: %s is not an integer register", r)
}

func (m *machine) setIntValue(r Reg, v uint64) {
	switch r.Bank() {
	case BankA8:
		m.a8[r.Idx()] = uint8(v)
	case BankA16:
		m.a16[r.Idx()] = uint16(v)
	case BankA32:
		m.a32[r.Idx()] = uint32(v)
	case BankA64:
		m.a64[r.Idx()] = v
	}
}

func addCarry(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum < a
}

func branchTarget(code []byte, pc int) (int, error) {
	if err := operands(code, pc, 2); err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint16(code[pc+1:])), nil
}

func operands(code []byte, pc, n int) error {
	if pc+n >= len(code) {
		return fmt.Errorf("program trap: truncated instruction at %d", pc)
	}
	return nil
}
