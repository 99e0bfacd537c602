package vm

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubView serves canned blobs per state type, in slice order.
type stubView struct {
	globals map[uint16][][]byte
	inputs  map[uint16][][]byte
	outputs map[uint16][][]byte
	meta    map[uint16][]byte
}

func (v *stubView) GlobalCount(st uint16) int { return len(v.globals[st]) }
func (v *stubView) InputCount(st uint16) int  { return len(v.inputs[st]) }
func (v *stubView) OutputCount(st uint16) int { return len(v.outputs[st]) }

func (v *stubView) Global(st uint16, idx int) ([]byte, bool) { return at(v.globals, st, idx) }
func (v *stubView) Input(st uint16, idx int) ([]byte, bool)  { return at(v.inputs, st, idx) }
func (v *stubView) Output(st uint16, idx int) ([]byte, bool) { return at(v.outputs, st, idx) }
func (v *stubView) Prev(st uint16, idx int) ([]byte, bool)   { return at(v.inputs, st, idx) }

func (v *stubView) Meta(mt uint16) ([]byte, bool) {
	blob, ok := v.meta[mt]
	return blob, ok
}

func at(m map[uint16][][]byte, st uint16, idx int) ([]byte, bool) {
	blobs := m[st]
	if idx < 0 || idx >= len(blobs) {
		return nil, false
	}
	return blobs[idx], true
}

func amountBlob(v uint64) []byte {
	blob := make([]byte, 8)
	binary.LittleEndian.PutUint64(blob, v)
	return blob
}

func run(t *testing.T, program func(a *Assembler), view StateView) error {
	t.Helper()
	a := NewAssembler()
	a.Entry("main")
	program(a)
	lib := MustAssemble(a)
	offset, ok := lib.EntryPoint("main")
	require.True(t, ok)
	return Run(lib, offset, view)
}

func TestRun_TestOutcomes(t *testing.T) {
	t.Run("passing test", func(t *testing.T) {
		err := run(t, func(a *Assembler) {
			a.Put(A64(0), 42)
			a.Put(A64(1), 42)
			a.Eq(A64(0), A64(1))
			a.Test()
			a.Ret()
		}, EmptyState{})
		require.NoError(t, err)
	})

	t.Run("failing test carries armed errno", func(t *testing.T) {
		err := run(t, func(a *Assembler) {
			a.Put(A8(0), 9)
			a.Put(A64(0), 1)
			a.Put(A64(1), 2)
			a.Eq(A64(0), A64(1))
			a.Test()
			a.Ret()
		}, EmptyState{})
		require.ErrorIs(t, err, &Failure{Errno: 9})
	})

	t.Run("explicit fail", func(t *testing.T) {
		err := run(t, func(a *Assembler) {
			a.Put(A8(0), 3)
			a.Fail()
		}, EmptyState{})
		require.ErrorIs(t, err, &Failure{Errno: 3})
	})
}

func TestRun_SumLoop(t *testing.T) {
	const stateType = 4000
	view := &stubView{outputs: map[uint16][][]byte{
		stateType: {amountBlob(5), amountBlob(7), amountBlob(30)},
	}}

	// sum the outputs by descending index, compare against the expected total
	sum := func(a *Assembler, expected uint64) {
		a.Put(A8(0), 1)
		a.Put(A64(0), 0)
		a.Put(A16(15), stateType)
		a.Put(A16(12), 0)
		a.Cnto(A16(15), A16(13))
		a.Label("loop")
		a.Jzr(A16(13), "done")
		a.Dec(A16(13))
		a.Ldo(A16(15), A16(13), S(15))
		a.Extr(S(15), 8, A16(12), A64(14))
		a.Addo(A64(0), A64(14))
		a.Jmp("loop")
		a.Label("done")
		a.Put(A64(1), expected)
		a.Eq(A64(0), A64(1))
		a.Test()
		a.Ret()
	}

	require.NoError(t, run(t, func(a *Assembler) { sum(a, 42) }, view))
	require.ErrorIs(t, run(t, func(a *Assembler) { sum(a, 43) }, view), &Failure{Errno: 1})
}

func TestRun_AddoOverflow(t *testing.T) {
	err := run(t, func(a *Assembler) {
		a.Put(A8(0), 7)
		a.Put(A64(0), math.MaxUint64)
		a.Put(A64(1), 1)
		a.Addo(A64(0), A64(1))
		a.Ret()
	}, EmptyState{})
	require.ErrorIs(t, err, &Failure{Errno: 7})
}

func TestRun_StateLoadMiss(t *testing.T) {
	err := run(t, func(a *Assembler) {
		a.Put(A8(0), 5)
		a.Put(A16(15), 2000)
		a.Put(A16(14), 0)
		a.Ldg(A16(15), A16(14), S(14))
		a.Ret()
	}, EmptyState{})
	require.ErrorIs(t, err, &Failure{Errno: 5}, "missing state is a validation failure, not a trap")
}

func TestRun_MetaLoad(t *testing.T) {
	view := &stubView{meta: map[uint16][]byte{1200: amountBlob(42)}}

	t.Run("declared metadata extracted", func(t *testing.T) {
		err := run(t, func(a *Assembler) {
			a.Put(A16(15), 1200)
			a.Ldm(A16(15), S(14))
			a.Put(A16(12), 0)
			a.Extr(S(14), 8, A16(12), A64(0))
			a.Put(A64(1), 42)
			a.Eq(A64(0), A64(1))
			a.Test()
			a.Ret()
		}, view)
		require.NoError(t, err)
	})

	t.Run("missing metadata carries armed errno", func(t *testing.T) {
		err := run(t, func(a *Assembler) {
			a.Put(A8(0), 8)
			a.Put(A16(15), 1201)
			a.Ldm(A16(15), S(14))
			a.Ret()
		}, view)
		require.ErrorIs(t, err, &Failure{Errno: 8})
	})
}

func TestRun_ExtrShortBlob(t *testing.T) {
	view := &stubView{globals: map[uint16][][]byte{2000: {[]byte{1, 2, 3}}}}
	err := run(t, func(a *Assembler) {
		a.Put(A8(0), 6)
		a.Put(A16(15), 2000)
		a.Put(A16(14), 0)
		a.Ldg(A16(15), A16(14), S(14))
		a.Put(A16(12), 0)
		a.Extr(S(14), 8, A16(12), A64(0))
		a.Ret()
	}, view)
	require.ErrorIs(t, err, &Failure{Errno: 6})
}

func TestRun_WideExtraction(t *testing.T) {
	// 16-byte field: u32 index in the low bytes, the spy projects it out
	blob := make([]byte, 20)
	binary.LittleEndian.PutUint32(blob, 1234)
	view := &stubView{globals: map[uint16][][]byte{2100: {blob}}}

	err := run(t, func(a *Assembler) {
		a.Put(A8(0), 1)
		a.Put(A16(15), 2100)
		a.Put(A16(14), 0)
		a.Ldg(A16(15), A16(14), S(14))
		a.Put(A16(12), 0)
		a.Extr(S(14), 16, A16(12), W(0))
		a.Spy(A32(0), W(0))
		a.Put(A32(1), 1234)
		a.Eq(A32(0), A32(1))
		a.Test()
		a.Ret()
	}, view)
	require.NoError(t, err)
}

func TestRun_CallAndReturn(t *testing.T) {
	a := NewAssembler()
	a.Entry("main")
	a.Call("setter")
	a.Put(A64(1), 11)
	a.Eq(A64(0), A64(1))
	a.Test()
	a.Ret()
	a.Entry("setter")
	a.Put(A64(0), 11)
	a.Ret()
	lib := MustAssemble(a)

	offset, ok := lib.EntryPoint("main")
	require.True(t, ok)
	require.NoError(t, Run(lib, offset, EmptyState{}))
}

func TestRun_Traps(t *testing.T) {
	t.Run("dec underflow", func(t *testing.T) {
		err := run(t, func(a *Assembler) {
			a.Dec(A16(0))
			a.Ret()
		}, EmptyState{})
		require.ErrorContains(t, err, "program trap: dec underflow")
	})

	t.Run("infinite loop hits step budget", func(t *testing.T) {
		err := run(t, func(a *Assembler) {
			a.Label("spin")
			a.Jmp("spin")
		}, EmptyState{})
		require.ErrorContains(t, err, "step budget exhausted")
	})

	t.Run("call depth limit", func(t *testing.T) {
		err := run(t, func(a *Assembler) {
			a.Label("rec")
			a.Call("rec")
		}, EmptyState{})
		require.ErrorContains(t, err, "call depth limit exceeded")
	})

	t.Run("nil library", func(t *testing.T) {
		require.ErrorContains(t, Run(nil, 0, EmptyState{}), "nil library")
	})
}
