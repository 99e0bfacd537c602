/*
Package typesystem is the catalog resolving human-readable semantic type
names to content-derived type identifiers. The catalog only assigns ids;
the serialization of values of these types is the concern of the encoding
layer, not of the schemas consuming the ids.
*/
package typesystem

import (
	"crypto"
	"fmt"
	"sync"

	"github.com/tokenschema/tokenschema-go-base/hash"
	"github.com/tokenschema/tokenschema-go-base/types"
)

// Decl declares one named semantic type. Shape is the structural description
// the id is derived from: identical (name, shape) pairs always produce the
// same id, a change to either produces a new id.
type Decl struct {
	_     struct{} `cbor:",toarray"`
	Name  string
	Shape string
}

func (d Decl) semID() types.SemID {
	return types.SemID(hash.Sum(crypto.SHA256, d.Name, d.Shape))
}

// TypeSystem is an immutable set of semantic type declarations.
type TypeSystem struct {
	decls  []Decl
	byName map[string]types.SemID
	byID   map[string]struct{}
}

func New(decls ...Decl) (*TypeSystem, error) {
	ts := &TypeSystem{
		decls:  decls,
		byName: make(map[string]types.SemID, len(decls)),
		byID:   make(map[string]struct{}, len(decls)),
	}
	for _, d := range decls {
		if d.Name == "" {
			return nil, fmt.Errorf("semantic type with empty name")
		}
		if _, ok := ts.byName[d.Name]; ok {
			return nil, fmt.Errorf("duplicate semantic type %q", d.Name)
		}
		id := d.semID()
		ts.byName[d.Name] = id
		ts.byID[string(id)] = struct{}{}
	}
	return ts, nil
}

// Extend returns a new catalog with the additional declarations; the
// receiver is unchanged.
func (ts *TypeSystem) Extend(decls ...Decl) (*TypeSystem, error) {
	return New(append(append([]Decl{}, ts.decls...), decls...)...)
}

// Get resolves a type name to its id. The shipped schemas are assembled at
// init time from known names, hence unknown name is a programming error.
func (ts *TypeSystem) Get(name string) types.SemID {
	id, ok := ts.byName[name]
	if !ok {
		panic(fmt.Sprintf("semantic type %q not in catalog", name))
	}
	return id
}

// Lookup resolves a type name without the known-name assumption.
func (ts *TypeSystem) Lookup(name string) (types.SemID, bool) {
	id, ok := ts.byName[name]
	return id, ok
}

// Contains reports whether the id belongs to this catalog.
func (ts *TypeSystem) Contains(id types.SemID) bool {
	_, ok := ts.byID[string(id)]
	return ok
}

// ID is the content-derived identifier of the whole catalog.
func (ts *TypeSystem) ID() types.SemID {
	return types.SemID(hash.Sum(crypto.SHA256, ts.decls))
}

// Standard type names shared by the asset schemas.
const (
	TypeAssetSpec  = "Contract.AssetSpec"
	TypeTerms      = "Contract.Terms"
	TypeAmount     = "Contract.Amount"
	TypeArticle    = "Contract.Article"
	TypeName       = "Contract.Name"
	TypeDetails    = "Contract.Details"
	TypePrecision  = "Contract.Precision"
	TypeTokenData  = "Token.Data"
	TypeAllocation = "Token.Allocation"
	TypeAttachment = "Token.Attachment"
)

var (
	standardOnce sync.Once
	standard     *TypeSystem
)

// Standard returns the type catalog shared by all shipped asset schemas.
func Standard() *TypeSystem {
	standardOnce.Do(func() {
		var err error
		standard, err = New(
			Decl{Name: TypeAssetSpec, Shape: "struct{ticker ascii(1..8), name ascii(1..40), details ascii(..255)?, precision u8}"},
			Decl{Name: TypeTerms, Shape: "struct{text utf8(..0xffff), media attachment?}"},
			Decl{Name: TypeAmount, Shape: "u64le"},
			Decl{Name: TypeArticle, Shape: "ascii(1..32)"},
			Decl{Name: TypeName, Shape: "ascii(1..40)"},
			Decl{Name: TypeDetails, Shape: "ascii(1..255)"},
			Decl{Name: TypePrecision, Shape: "u8(..18)"},
			Decl{Name: TypeTokenData, Shape: "struct{index u32le, name ascii(..40), preview attachment?}"},
			Decl{Name: TypeAllocation, Shape: "struct{index u32le, fraction u64le, reserved bytes(8)}"},
			Decl{Name: TypeAttachment, Shape: "struct{mediaType ascii(..64), digest bytes(32)}"},
		)
		if err != nil {
			panic(fmt.Errorf("building standard type catalog: %w", err))
		}
	})
	return standard
}
