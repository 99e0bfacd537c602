package vm

/*
StateView is the read-only window a validation program gets into a single
genesis or state-transition instance. State blobs are opaque to the machine;
programs extract fixed-width fields from them at known byte offsets.

Instance counts are exact and statically known for the validated instance,
which is what bounds every program loop.
*/
type StateView interface {
	// GlobalCount returns the number of instances of a global state slot
	// visible to the validated operation.
	GlobalCount(stateType uint16) int
	// Global returns the blob of one global state instance.
	Global(stateType uint16, idx int) ([]byte, bool)

	// InputCount returns the number of consumed assignments of a state type.
	InputCount(stateType uint16) int
	// Input returns the blob committed in one consumed assignment.
	Input(stateType uint16, idx int) ([]byte, bool)

	// OutputCount returns the number of produced assignments of a state type.
	OutputCount(stateType uint16) int
	// Output returns the blob committed in one produced assignment.
	Output(stateType uint16, idx int) ([]byte, bool)

	// Prev returns the previous state carried by a consumed assignment.
	Prev(stateType uint16, idx int) ([]byte, bool)

	// Meta returns the metadata blob the operation carries in a slot.
	Meta(metaType uint16) ([]byte, bool)
}

// EmptyState is a StateView with no state at all, usable as a base for
// partially populated views in tests.
type EmptyState struct{}

func (EmptyState) GlobalCount(uint16) int            { return 0 }
func (EmptyState) Global(uint16, int) ([]byte, bool) { return nil, false }
func (EmptyState) InputCount(uint16) int             { return 0 }
func (EmptyState) Input(uint16, int) ([]byte, bool)  { return nil, false }
func (EmptyState) OutputCount(uint16) int            { return 0 }
func (EmptyState) Output(uint16, int) ([]byte, bool) { return nil, false }
func (EmptyState) Prev(uint16, int) ([]byte, bool)   { return nil, false }
func (EmptyState) Meta(uint16) ([]byte, bool)        { return nil, false }
