package vm

// Opcode byte values. The operand layout of every instruction is fixed, see
// the assembler for the encoding.
const (
	// control flow
	OpFail byte = iota // halt, validation failed; errno is taken from a8[0]
	OpRet              // return from call, or halt with success at top level
	OpJmp              // jump to absolute code offset
	OpJif              // jump if the status flag is set
	OpJzr              // jump if an integer register is zero
	OpCall             // call subroutine at absolute code offset

	// data movement
	OpPut // put immediate value into a register
	OpSpy // copy the low bits of a wide register into an integer register

	// state access
	OpLdg  // load global state blob: state type, index register, dest blob register
	OpLdi  // load input (consumed) assignment blob
	OpLdo  // load output (produced) assignment blob
	OpLdp  // load previous state of a consumed assignment
	OpLdm  // load an operation metadata blob
	OpCnti // count of input instances of a state type
	OpCnto // count of output instances of a state type

	// arithmetic / logic
	OpExtr // extract a little-endian field from a blob at a byte offset
	OpAddo // checked add; overflow halts with validation failure
	OpDec  // decrement an integer register
	OpEq   // compare two registers, sets the status flag
	OpTest // halt with validation failure if the status flag is clear

	numOp
)

var opNames = [numOp]string{
	OpFail: "fail",
	OpRet:  "ret",
	OpJmp:  "jmp",
	OpJif:  "jif",
	OpJzr:  "jzr",
	OpCall: "call",
	OpPut:  "put",
	OpSpy:  "spy",
	OpLdg:  "ldg",
	OpLdi:  "ldi",
	OpLdo:  "ldo",
	OpLdp:  "ldp",
	OpLdm:  "ldm",
	OpCnti: "cnti",
	OpCnto: "cnto",
	OpExtr: "extr",
	OpAddo: "addo",
	OpDec:  "dec",
	OpEq:   "eq",
	OpTest: "test",
}

func OpName(op byte) string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}
