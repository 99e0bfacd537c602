package schemes

import (
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/types"
	"github.com/tokenschema/tokenschema-go-base/typesystem"
	"github.com/tokenschema/tokenschema-go-base/vm"
)

/*
Config is the complete declarative input of one asset-class schema. Class
differences are data in this struct; the construction control flow is the
same for every class.
*/
type Config struct {
	Name        string
	Timestamp   int64
	Types       *typesystem.TypeSystem
	MetaTypes   map[types.MetaType]types.SemID
	Globals     map[types.GlobalStateType]types.GlobalStateSchema
	Owned       map[types.AssignmentType]types.OwnedStateSchema
	Genesis     types.GenesisSchema
	Transitions map[types.TransitionType]types.TransitionSchema
	Libs        []*vm.Lib
}

// BuildSchema assembles and verifies a schema from its declarative
// configuration. A verification failure here is a build-time error: no
// usable schema is produced.
func BuildSchema(cfg Config) (*types.Schema, error) {
	if cfg.Types == nil {
		return nil, fmt.Errorf("schema %q: no type catalog", cfg.Name)
	}
	s := &types.Schema{
		Name:         cfg.Name,
		Timestamp:    cfg.Timestamp,
		TypeSystemID: cfg.Types.ID(),
		MetaTypes:    cfg.MetaTypes,
		GlobalTypes:  cfg.Globals,
		OwnedTypes:   cfg.Owned,
		Genesis:      cfg.Genesis,
		Transitions:  cfg.Transitions,
		Libs:         cfg.Libs,
	}
	if err := s.Verify(cfg.Types); err != nil {
		return nil, fmt.Errorf("schema %q: %w", cfg.Name, err)
	}
	return s, nil
}

// MustSchema is BuildSchema for the shipped class schemas assembled at init
// time, where a malformed declaration is a programming error.
func MustSchema(cfg Config) *types.Schema {
	s, err := BuildSchema(cfg)
	if err != nil {
		panic(err)
	}
	return s
}
