package vm

import "fmt"

// Reg addresses one register: high nibble is the bank, low nibble the index.
// Each bank holds 16 registers.
type Reg byte

const (
	BankA8 byte = iota // 8-bit integers; a8[0] is the errno register by convention
	BankA16            // 16-bit integers; loop counters, state type selectors, byte offsets
	BankA32            // 32-bit integers
	BankA64            // 64-bit integers; amount accumulators
	BankW              // 128-bit wide values
	BankS              // state blobs
)

func reg(bank byte, idx int) Reg {
	if idx < 0 || idx > 15 {
		panic(fmt.Sprintf("register index %d out of range", idx))
	}
	return Reg(bank<<4 | byte(idx))
}

func A8(idx int) Reg  { return reg(BankA8, idx) }
func A16(idx int) Reg { return reg(BankA16, idx) }
func A32(idx int) Reg { return reg(BankA32, idx) }
func A64(idx int) Reg { return reg(BankA64, idx) }
func W(idx int) Reg   { return reg(BankW, idx) }
func S(idx int) Reg   { return reg(BankS, idx) }

func (r Reg) Bank() byte { return byte(r) >> 4 }
func (r Reg) Idx() int   { return int(byte(r) & 0x0f) }

func (r Reg) String() string {
	switch r.Bank() {
	case BankA8:
		return fmt.Sprintf("a8[%d]", r.Idx())
	case BankA16:
		return fmt.Sprintf("a16[%d]", r.Idx())
	case BankA32:
		return fmt.Sprintf("a32[%d]", r.Idx())
	case BankA64:
		return fmt.Sprintf("a64[%d]", r.Idx())
	case BankW:
		return fmt.Sprintf("w[%d]", r.Idx())
	case BankS:
		return fmt.Sprintf("s[%d]", r.Idx())
	}
	return fmt.Sprintf("reg(%#x)", byte(r))
}

// immWidth is the immediate operand size of a PUT into the given bank.
func immWidth(bank byte) int {
	switch bank {
	case BankA8:
		return 1
	case BankA16:
		return 2
	case BankA32:
		return 4
	case BankA64:
		return 8
	}
	return 0
}
