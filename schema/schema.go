// Package schema models the P4-program metadata the value codec needs:
// per-field bit-widths, named types, match kinds and raw annotation
// strings, as exported from a compiled program. The schema is
// read-only input; this package loads and validates it and resolves
// the wire format of every field.
package schema

import (
	"fmt"
	"os"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gopkg.in/yaml.v3"

	"github.com/sdn-platform/p4ir/ir"
)

// MatchKind is the match algorithm declared for a table key field.
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchLPM      MatchKind = "lpm"
	MatchTernary  MatchKind = "ternary"
	MatchOptional MatchKind = "optional"
)

// NamedType describes a user-defined P4 type. A type translated to an
// SDN string carries operator-chosen identifiers instead of
// fixed-width integers.
type NamedType struct {
	SdnString bool `yaml:"sdn_string"`
}

// Field is a table match field or an action parameter.
type Field struct {
	ID       uint32 `yaml:"id"`
	Name     string `yaml:"name"`
	Bitwidth int    `yaml:"bitwidth"`
	// Type names a NamedType in the schema's type table; empty for
	// plain bit<W> fields.
	Type string `yaml:"type,omitempty"`
	// Match is set for table key fields only.
	Match       MatchKind `yaml:"match,omitempty"`
	Annotations []string  `yaml:"annotations,omitempty"`
}

// Action is an action definition with its parameters.
type Action struct {
	ID          uint32   `yaml:"id"`
	Name        string   `yaml:"name"`
	Params      []Field  `yaml:"params,omitempty"`
	Annotations []string `yaml:"annotations,omitempty"`
}

// Table is a table definition with its key fields.
type Table struct {
	ID          uint32   `yaml:"id"`
	Name        string   `yaml:"name"`
	MatchFields []Field  `yaml:"match_fields,omitempty"`
	Annotations []string `yaml:"annotations,omitempty"`
}

// Schema is the program metadata for one P4 program.
type Schema struct {
	Types   map[string]NamedType `yaml:"types,omitempty"`
	Tables  []Table              `yaml:"tables,omitempty"`
	Actions []Action             `yaml:"actions,omitempty"`
}

// Load reads and validates a schema from a YAML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	schema := &Schema{}
	if err := yaml.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// FieldFormat resolves the wire format of a field against the schema's
// named types.
func (s *Schema) FieldFormat(field Field) (ir.Format, error) {
	isSdnString := false
	if field.Type != "" {
		namedType, ok := s.Types[field.Type]
		if !ok {
			return 0, status.Errorf(codes.InvalidArgument, "type definition for %q not found", field.Type)
		}
		isSdnString = namedType.SdnString
	}
	return ir.GetFormat(field.Annotations, field.Bitwidth, isSdnString)
}

// Validate checks the schema for duplicate identifiers, unknown match
// kinds and fields whose format cannot be resolved or is not allowed
// for their match kind.
func (s *Schema) Validate() error {
	if err := validateUnique("table", tableKeys(s.Tables)); err != nil {
		return err
	}
	for _, table := range s.Tables {
		if err := validateUnique(fmt.Sprintf("match field of table %q", table.Name), fieldKeys(table.MatchFields)); err != nil {
			return err
		}
		for _, field := range table.MatchFields {
			if err := s.validateMatchField(table, field); err != nil {
				return err
			}
		}
	}

	if err := validateUnique("action", actionKeys(s.Actions)); err != nil {
		return err
	}
	for _, action := range s.Actions {
		if err := validateUnique(fmt.Sprintf("parameter of action %q", action.Name), fieldKeys(action.Params)); err != nil {
			return err
		}
		for _, param := range action.Params {
			if _, err := s.FieldFormat(param); err != nil {
				return status.Errorf(status.Code(err),
					"action %q has invalid parameter %q: %v", action.Name, param.Name, err)
			}
		}
	}
	return nil
}

func (s *Schema) validateMatchField(table Table, field Field) error {
	format, err := s.FieldFormat(field)
	if err != nil {
		return status.Errorf(status.Code(err),
			"table %q has invalid match field %q: %v", table.Name, field.Name, err)
	}

	switch field.Match {
	case MatchLPM, MatchTernary:
		// Masked matches have no meaningful bit layout for strings.
		if format == ir.FormatString {
			return status.Errorf(codes.InvalidArgument,
				"only exact and optional match fields can use format STRING: field %q of table %q",
				field.Name, table.Name)
		}
	case MatchExact, MatchOptional:
	default:
		return status.Errorf(codes.InvalidArgument,
			"match kind %q of field %q in table %q is not supported", field.Match, field.Name, table.Name)
	}
	return nil
}

// Table looks a table up by name.
func (s *Schema) Table(name string) (*Table, error) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], nil
		}
	}
	return nil, status.Errorf(codes.NotFound, "table %q not found", name)
}

// Action looks an action up by name.
func (s *Schema) Action(name string) (*Action, error) {
	for i := range s.Actions {
		if s.Actions[i].Name == name {
			return &s.Actions[i], nil
		}
	}
	return nil, status.Errorf(codes.NotFound, "action %q not found", name)
}

// MatchField looks a key field up by name.
func (t *Table) MatchField(name string) (*Field, error) {
	for i := range t.MatchFields {
		if t.MatchFields[i].Name == name {
			return &t.MatchFields[i], nil
		}
	}
	return nil, status.Errorf(codes.NotFound, "match field %q not found in table %q", name, t.Name)
}

// Param looks an action parameter up by name.
func (a *Action) Param(name string) (*Field, error) {
	for i := range a.Params {
		if a.Params[i].Name == name {
			return &a.Params[i], nil
		}
	}
	return nil, status.Errorf(codes.NotFound, "parameter %q not found in action %q", name, a.Name)
}

type key struct {
	id   uint32
	name string
}

func tableKeys(tables []Table) []key {
	keys := make([]key, len(tables))
	for i, t := range tables {
		keys[i] = key{t.ID, t.Name}
	}
	return keys
}

func actionKeys(actions []Action) []key {
	keys := make([]key, len(actions))
	for i, a := range actions {
		keys[i] = key{a.ID, a.Name}
	}
	return keys
}

func fieldKeys(fields []Field) []key {
	keys := make([]key, len(fields))
	for i, f := range fields {
		keys[i] = key{f.ID, f.Name}
	}
	return keys
}

func validateUnique(kind string, keys []key) error {
	byID := map[uint32]struct{}{}
	byName := map[string]struct{}{}
	for _, k := range keys {
		if _, ok := byID[k.id]; ok {
			return status.Errorf(codes.InvalidArgument, "found several %ss with the same ID %d", kind, k.id)
		}
		if _, ok := byName[k.name]; ok {
			return status.Errorf(codes.InvalidArgument, "found several %ss with the same name %q", kind, k.name)
		}
		byID[k.id] = struct{}{}
		byName[k.name] = struct{}{}
	}
	return nil
}
