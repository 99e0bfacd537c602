/*
Package issuer enumerates the shipped asset classes and dispatches to their
schemas, interfaces and bindings. The enum is closed: every accessor
switches exhaustively and an unlisted class is a programming error, so
adding a class means extending every switch here.
*/
package issuer

import (
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/iface"
	"github.com/tokenschema/tokenschema-go-base/schemes/cfa"
	"github.com/tokenschema/tokenschema-go-base/schemes/fsa"
	"github.com/tokenschema/tokenschema-go-base/schemes/ifa"
	"github.com/tokenschema/tokenschema-go-base/schemes/uta"
	"github.com/tokenschema/tokenschema-go-base/types"
	"github.com/tokenschema/tokenschema-go-base/vm"
)

// Class identifies one shipped asset class.
type Class uint8

const (
	FixedSupply Class = iota + 1
	Inflatable
	Collectible
	Unique
)

// Classes lists every shipped class.
func Classes() []Class {
	return []Class{FixedSupply, Inflatable, Collectible, Unique}
}

func (c Class) String() string {
	switch c {
	case FixedSupply:
		return "FixedSupplyAsset"
	case Inflatable:
		return "InflatableAsset"
	case Collectible:
		return "CollectibleAsset"
	case Unique:
		return "UniqueToken"
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// Schema returns the contract schema of the class.
func (c Class) Schema() *types.Schema {
	switch c {
	case FixedSupply:
		return fsa.Schema()
	case Inflatable:
		return ifa.Schema()
	case Collectible:
		return cfa.Schema()
	case Unique:
		return uta.Schema()
	}
	panic(fmt.Sprintf("unknown asset class %d", uint8(c)))
}

// Iface returns the interface the class implements.
func (c Class) Iface() iface.Iface {
	switch c {
	case FixedSupply:
		return fsa.Iface()
	case Inflatable:
		return ifa.Iface()
	case Collectible:
		return cfa.Iface()
	case Unique:
		return uta.Iface()
	}
	panic(fmt.Sprintf("unknown asset class %d", uint8(c)))
}

// IfaceImpl returns the binding of the class schema to its interface.
func (c Class) IfaceImpl() iface.IfaceImpl {
	switch c {
	case FixedSupply:
		return fsa.IfaceImpl()
	case Inflatable:
		return ifa.IfaceImpl()
	case Collectible:
		return cfa.IfaceImpl()
	case Unique:
		return uta.IfaceImpl()
	}
	panic(fmt.Sprintf("unknown asset class %d", uint8(c)))
}

// Lib returns the validation library of the class.
func (c Class) Lib() *vm.Lib {
	switch c {
	case FixedSupply:
		return fsa.Lib()
	case Inflatable:
		return ifa.Lib()
	case Collectible:
		return cfa.Lib()
	case Unique:
		return uta.Lib()
	}
	panic(fmt.Sprintf("unknown asset class %d", uint8(c)))
}
