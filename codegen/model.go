// Package codegen implements mlang's opcode and serde generators: given an
// analyzed schema, it builds an in-memory model of every declaration's Go
// shape and display name, then renders opcode.go and serde.go by rendering
// text/template to a buffer and running go/format.Source over the result.
package codegen

import (
	"fmt"
	"strconv"
	"text/template"

	"github.com/iancoleman/strcase"

	"github.com/styles-lab/mlc/codegen/mapping"
	"github.com/styles-lab/mlc/ir"
)

// declModel is the generator's view of one el/leaf/attr/data/mixin
// declaration or enum, built once from the analyzed schema and shared by
// both the opcode and serde templates so the two artifacts never disagree
// on a name.
type declModel struct {
	Index       int
	DeclKind    ir.DeclKind
	IsEnum      bool
	GoName      string
	DisplayName string
	Fields      []fieldModel
	Variants    []variantModel
}

// fieldModel is one field of a declModel or variantModel.
type fieldModel struct {
	Index       int
	GoName      string
	DisplayName string // "" for a positional (unnamed) field
	GoType      string
	Variable    bool
	Option      bool
}

// variantModel is one enum variant, itself node-shaped. GoName is the bare
// variant name; the templates prefix it with the owning enum's GoName to
// form the record type name.
type variantModel struct {
	Index       int
	GoName      string
	DisplayName string
	Fields      []fieldModel
}

// Model is the full generator input built from one analyzed schema.
type Model struct {
	Decls      []*declModel // el/leaf/attr/data/mixin, source order
	Enums      []*declModel // enum declarations, source order
	Elements   []*declModel // Decls filtered to DeclElement
	Leaves     []*declModel // Decls filtered to DeclLeaf
	Attrs      []*declModel // Decls filtered to DeclAttr
	ApplyTo    []*ir.ApplyTo
	ChildrenOf []*ir.ChildrenOf

	byIndex map[int]*declModel
}

// BuildModel walks an analyzed schema's statements once, resolving every
// field type to a Go type string and every declaration/field to its
// display name.
func BuildModel(schema *ir.Schema) *Model {
	m := &Model{byIndex: map[int]*declModel{}}

	for i, stat := range schema.Stats {
		switch s := stat.(type) {
		case *ir.Node:
			d := &declModel{Index: i, DeclKind: s.DeclKind, GoName: strcase.ToCamel(s.Name.Name), DisplayName: displayName(s.Name.Name, s.Properties)}
			m.byIndex[i] = d
			m.Decls = append(m.Decls, d)
			switch s.DeclKind {
			case ir.DeclElement:
				m.Elements = append(m.Elements, d)
			case ir.DeclLeaf:
				m.Leaves = append(m.Leaves, d)
			case ir.DeclAttr:
				m.Attrs = append(m.Attrs, d)
			}
		case *ir.Enum:
			d := &declModel{Index: i, IsEnum: true, GoName: strcase.ToCamel(s.Name.Name), DisplayName: displayName(s.Name.Name, s.Properties)}
			m.byIndex[i] = d
			m.Enums = append(m.Enums, d)
		}
	}

	for i, stat := range schema.Stats {
		switch s := stat.(type) {
		case *ir.Node:
			d := m.byIndex[i]
			d.Fields = m.buildFields(s.Fields)
		case *ir.Enum:
			d := m.byIndex[i]
			for vi, variant := range s.Variants {
				d.Variants = append(d.Variants, variantModel{
					Index:       vi,
					GoName:      strcase.ToCamel(variant.Name.Name),
					DisplayName: displayName(variant.Name.Name, variant.Properties),
					Fields:      m.buildFields(variant.Fields),
				})
			}
		case *ir.ApplyTo:
			m.ApplyTo = append(m.ApplyTo, s)
		case *ir.ChildrenOf:
			m.ChildrenOf = append(m.ChildrenOf, s)
		}
	}

	return m
}

func displayName(sourceName string, props []ir.Property) string {
	if name, ok := ir.Rename(props); ok {
		return name
	}
	return strcase.ToLowerCamel(sourceName)
}

func (m *Model) buildFields(fields ir.Fields) []fieldModel {
	var out []fieldModel
	switch fields.Kind {
	case ir.FieldsNamed:
		for i, f := range fields.Named {
			out = append(out, fieldModel{
				Index:       i,
				GoName:      strcase.ToCamel(f.Name.Name),
				DisplayName: displayName(f.Name.Name, f.Properties),
				GoType:      m.fieldGoType(f.Type, f.Properties),
				Variable:    ir.HasVariable(f.Properties),
				Option:      ir.HasOption(f.Properties),
			})
		}
	case ir.FieldsUnnamed:
		for i, f := range fields.Unnamed {
			out = append(out, fieldModel{
				Index:    i,
				GoName:   fmt.Sprintf("Field%d", i),
				GoType:   m.fieldGoType(f.Type, f.Properties),
				Variable: ir.HasVariable(f.Properties),
				Option:   ir.HasOption(f.Properties),
			})
		}
	}
	return out
}

// fieldGoType computes a field's Go type, applying the variable/option
// modifiers in order: a field with variable becomes Variable<T>, then a
// field with option becomes optional-of-T.
func (m *Model) fieldGoType(t ir.Type, props []ir.Property) string {
	base := m.goType(t)
	if ir.HasVariable(props) {
		base = "serde.Variable[" + base + "]"
	}
	if ir.HasOption(props) {
		base = "*" + base
	}
	return base
}

func (m *Model) goType(t ir.Type) string {
	switch v := t.(type) {
	case ir.PrimitiveType:
		return mapping.HostType(v.Kind)
	case ir.DataType:
		if d, ok := m.byIndex[v.Index]; ok {
			return d.GoName
		}
		return "any"
	case ir.ListOfType:
		return "[]" + m.goType(v.Elem)
	case ir.ArrayOfType:
		return fmt.Sprintf("[%d]%s", v.Length.Uint, m.goType(v.Elem))
	default:
		return "any"
	}
}

// declByIndex returns the declModel for a statement index, used by the
// serde generator's opcode-level routing tables.
func (m *Model) declByIndex(i int) (*declModel, bool) {
	d, ok := m.byIndex[i]
	return d, ok
}

// umbrellaModel groups the declarations one categorical sum wraps.
type umbrellaModel struct {
	Name  string
	Decls []*declModel
}

// Umbrellas returns the three categorical sums in their fixed emit order.
func (m *Model) Umbrellas() []umbrellaModel {
	return []umbrellaModel{
		{Name: "Element", Decls: m.Elements},
		{Name: "Leaf", Decls: m.Leaves},
		{Name: "Attr", Decls: m.Attrs},
	}
}

// tmplFuncs is the FuncMap both generator templates render with.
var tmplFuncs = template.FuncMap{
	"quote":      strconv.Quote,
	"lowerFirst": lowerFirst,
	"serMethod":  declSerializeMethod,
	"deMethod":   declDeserializeMethod,
}
