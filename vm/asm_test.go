package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssembler_EntryPoints(t *testing.T) {
	a := NewAssembler()
	a.Entry("first")
	a.Put(A8(0), 7)
	a.Ret()
	a.Entry("second")
	a.Fail()
	lib := MustAssemble(a)

	// every entry offset must land on the expected first opcode
	for name, wantOp := range map[string]byte{"first": OpPut, "second": OpFail} {
		offset, ok := lib.EntryPoint(name)
		require.True(t, ok, name)
		require.True(t, lib.IsEntryPoint(offset), name)
		op, err := lib.OpcodeAt(offset)
		require.NoError(t, err)
		require.Equal(t, wantOp, op, name)
	}
	require.Equal(t, []string{"first", "second"}, lib.EntryPoints())
	require.False(t, lib.IsEntryPoint(1))
}

func TestAssembler_BranchFixups(t *testing.T) {
	// the jump must skip the fail; a broken fixup would land on it
	a := NewAssembler()
	a.Entry("main")
	a.Jmp("end")
	a.Fail()
	a.Label("end")
	a.Ret()
	lib, err := a.Assemble()
	require.NoError(t, err)

	offset, ok := lib.EntryPoint("main")
	require.True(t, ok)
	require.NoError(t, Run(lib, offset, EmptyState{}))
}

func TestAssembler_LibID(t *testing.T) {
	build := func() *Lib {
		a := NewAssembler()
		a.Entry("main")
		a.Ret()
		return MustAssemble(a)
	}
	require.True(t, build().ID().Eq(build().ID()), "identical programs must share an id")

	a := NewAssembler()
	a.Entry("main")
	a.Fail()
	require.False(t, build().ID().Eq(MustAssemble(a).ID()))
}

func TestAssembler_Errors(t *testing.T) {
	cases := []struct {
		name    string
		program func(a *Assembler)
		errMsg  string
	}{
		{
			name: "undefined label",
			program: func(a *Assembler) {
				a.Entry("main")
				a.Jmp("nowhere")
			},
			errMsg: `undefined label "nowhere"`,
		},
		{
			name: "duplicate entry point",
			program: func(a *Assembler) {
				a.Entry("main")
				a.Ret()
				a.Entry("main")
			},
			errMsg: `duplicate entry point "main"`,
		},
		{
			name: "duplicate label",
			program: func(a *Assembler) {
				a.Entry("main")
				a.Label("loop")
				a.Label("loop")
			},
			errMsg: `duplicate label "loop"`,
		},
		{
			name:    "no entry points",
			program: func(a *Assembler) { a.Ret() },
			errMsg:  "no entry points declared",
		},
		{
			name: "immediate does not fit register",
			program: func(a *Assembler) {
				a.Entry("main")
				a.Put(A8(0), 256)
			},
			errMsg: "does not fit a8[0]",
		},
		{
			name: "put into blob register",
			program: func(a *Assembler) {
				a.Entry("main")
				a.Put(S(0), 1)
			},
			errMsg: "not an integer register",
		},
		{
			name: "extr width incompatible with destination",
			program: func(a *Assembler) {
				a.Entry("main")
				a.Extr(S(0), 8, A16(0), A32(0))
			},
			errMsg: "width 8 incompatible with destination a32[0]",
		},
		{
			name: "eq across banks",
			program: func(a *Assembler) {
				a.Entry("main")
				a.Eq(A32(0), A64(0))
			},
			errMsg: "different banks",
		},
		{
			name: "load into non-blob register",
			program: func(a *Assembler) {
				a.Entry("main")
				a.Ldo(A16(0), A16(1), A64(0))
			},
			errMsg: "must be a blob register",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAssembler()
			tc.program(a)
			_, err := a.Assemble()
			require.ErrorContains(t, err, tc.errMsg)
		})
	}
}
