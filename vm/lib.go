package vm

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tokenschema/tokenschema-go-base/hash"
)

// LibID is the content-derived identifier of an assembled library: the SHA256
// checksum of its code. Two identical programs always share an id, so schemas
// may reference the same library without duplicating it.
type LibID []byte

func (id LibID) Eq(other LibID) bool { return bytes.Equal(id, other) }

func (id LibID) String() string { return hexutil.Encode(id) }

// LibSite is an entry point into a library: a code offset that must land on
// the start of a subroutine.
type LibSite struct {
	_      struct{} `cbor:",toarray"`
	Lib    LibID
	Offset uint16
}

func Site(lib *Lib, entry string) LibSite {
	offset, ok := lib.EntryPoint(entry)
	if !ok {
		panic(fmt.Sprintf("library has no entry point %q", entry))
	}
	return LibSite{Lib: lib.ID(), Offset: offset}
}

// Lib is an immutable assembled validation library: code bytes plus the named
// subroutine entry points resolved by the assembler.
type Lib struct {
	code    []byte
	entries map[string]uint16
}

func (l *Lib) ID() LibID { return hash.Sum256(l.code) }

func (l *Lib) Code() []byte { return bytes.Clone(l.code) }

func (l *Lib) EntryPoint(name string) (uint16, bool) {
	offset, ok := l.entries[name]
	return offset, ok
}

// EntryPoints returns the named entry points in name order.
func (l *Lib) EntryPoints() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsEntryPoint reports whether the offset is the start of a declared
// subroutine. Validators referenced from schemas must satisfy this.
func (l *Lib) IsEntryPoint(offset uint16) bool {
	for _, o := range l.entries {
		if o == offset {
			return true
		}
	}
	return false
}

// OpcodeAt returns the opcode byte at the given code offset.
func (l *Lib) OpcodeAt(offset uint16) (byte, error) {
	if int(offset) >= len(l.code) {
		return 0, fmt.Errorf("offset %d out of code bounds (%d bytes)", offset, len(l.code))
	}
	return l.code[offset], nil
}
