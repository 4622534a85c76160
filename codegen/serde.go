package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/styles-lab/mlc/ir"
)

// serdeTmplData is the serde template's input, prepared by buildSerdeData:
// the non-mixin declarations, the enums, the umbrella groupings, the
// opcode-level dispatch cases, and the pre-sorted routing-table rows.
type serdeTmplData struct {
	Decls          []*declModel
	Enums          []*declModel
	Umbrellas      []umbrellaModel
	Elements       []*declModel
	Leaves         []*declModel
	DispatchByID   []dispatchCase
	DispatchByName []dispatchCase
	ApplyAttrs     []routingRow
	AttrFields     []routingRow
}

// dispatchCase is one arm of an opcode-level dispatch switch. Label is the
// rendered case label, a type id or a quoted display name.
type dispatchCase struct {
	Label    string
	GoName   string
	Umbrella string
	Opcode   string
}

// routingRow is one entry of the applyAttrs/attrFields map literals, with
// Values already sorted lexicographically.
type routingRow struct {
	Key    string
	Values []string
}

// serdeTmpl renders the codec-bindings body: a Serialize/Deserialize pair
// per declaration, per-variant enum codecs with a shared Visitor, the
// umbrella delegations, the routing tables, and the opcode-level Visitor.
var serdeTmpl = template.Must(template.New("serde").Funcs(tmplFuncs).Parse(`
{{- range $d := .Decls}}
func (v {{$d.GoName}}) Serialize(s serde.Serializer) error {
	node, err := s.{{serMethod $d.DeclKind}}({{$d.Index}}, {{quote $d.DisplayName}}, {{len $d.Fields}})
	if err != nil {
		return err
	}
{{- range $d.Fields}}
	if err := node.SerializeField({{.Index}}, {{quote .DisplayName}}, v.{{.GoName}}); err != nil {
		return err
	}
{{- end}}
	return node.Finish()
}

type {{$d.GoName}}Visitor struct{ serde.UnimplementedVisitor }

func ({{$d.GoName}}Visitor) VisitNode(data serde.NodeAccess) (any, error) {
{{- range $d.Fields}}
	f{{.Index}}, err := serde.DeserializeField[{{.GoType}}](data, {{quote $d.DisplayName}}, {{.Index}}, {{quote .DisplayName}})
	if err != nil {
		return nil, err
	}
{{- end}}
	return {{$d.GoName}}{
{{- range $d.Fields}}
		{{.GoName}}: f{{.Index}},
{{- end}}
	}, nil
}

func Deserialize{{$d.GoName}}(d serde.Deserializer) ({{$d.GoName}}, error) {
	v, err := d.{{deMethod $d.DeclKind}}({{$d.Index}}, {{quote $d.DisplayName}}, {{$d.GoName}}Visitor{})
	if err != nil {
		return {{$d.GoName}}{}, err
	}
	node, ok := v.({{$d.GoName}})
	if !ok {
		return {{$d.GoName}}{}, serde.Unexpect({{quote $d.DisplayName}})
	}
	return node, nil
}
{{end}}

{{- range $e := .Enums}}
{{- range $v := $e.Variants}}
func (v {{$e.GoName}}{{$v.GoName}}) Serialize(s serde.Serializer) error {
	node, err := s.SerializeEnum({{$e.Index}}, {{quote $e.DisplayName}}, {{quote $v.DisplayName}}, {{$v.Index}}, {{len $v.Fields}})
	if err != nil {
		return err
	}
{{- range $v.Fields}}
	if err := node.SerializeField({{.Index}}, {{quote .DisplayName}}, v.{{.GoName}}); err != nil {
		return err
	}
{{- end}}
	return node.Finish()
}

func decode{{$e.GoName}}{{$v.GoName}}(data serde.NodeAccess) (any, error) {
{{- range $v.Fields}}
	f{{.Index}}, err := serde.DeserializeField[{{.GoType}}](data, {{quote $v.DisplayName}}, {{.Index}}, {{quote .DisplayName}})
	if err != nil {
		return nil, err
	}
{{- end}}
	return {{$e.GoName}}{{$v.GoName}}{
{{- range $v.Fields}}
		{{.GoName}}: f{{.Index}},
{{- end}}
	}, nil
}
{{end}}
type {{$e.GoName}}Visitor struct{ serde.UnimplementedVisitor }

func ({{$e.GoName}}Visitor) VisitEnum(variantIndex int, data serde.NodeAccess) (any, error) {
	switch variantIndex {
{{- range $v := $e.Variants}}
	case {{$v.Index}}:
		return decode{{$e.GoName}}{{$v.GoName}}(data)
{{- end}}
	}
	return nil, serde.UnknownVariantIndex({{quote $e.DisplayName}}, variantIndex)
}

func ({{$e.GoName}}Visitor) VisitEnumWith(variantName string, data serde.NodeAccess) (any, error) {
	switch variantName {
{{- range $v := $e.Variants}}
	case {{quote $v.DisplayName}}:
		return decode{{$e.GoName}}{{$v.GoName}}(data)
{{- end}}
	}
	return nil, serde.UnknownVariant({{quote $e.DisplayName}}, variantName)
}

func Deserialize{{$e.GoName}}(d serde.Deserializer) ({{$e.GoName}}, error) {
	v, err := d.DeserializeEnum({{$e.Index}}, {{quote $e.DisplayName}}, {{$e.GoName}}Visitor{})
	if err != nil {
		return nil, err
	}
	node, ok := v.({{$e.GoName}})
	if !ok {
		return nil, serde.Unexpect({{quote $e.DisplayName}})
	}
	return node, nil
}
{{end}}

{{- range $u := .Umbrellas}}
{{- range $d := $u.Decls}}
func (w {{$u.Name}}{{$d.GoName}}) Serialize(s serde.Serializer) error { return w.Value.Serialize(s) }
{{end}}
{{- end}}
func (o OpcodeApply) Serialize(s serde.Serializer) error   { return o.Value.Serialize(s) }
func (o OpcodeElement) Serialize(s serde.Serializer) error { return o.Value.Serialize(s) }
func (o OpcodeLeaf) Serialize(s serde.Serializer) error    { return o.Value.Serialize(s) }
func (o OpcodePop) Serialize(s serde.Serializer) error     { return s.SerializePop() }

// SerializeOpcodes writes a whole opcode stream in order.
func SerializeOpcodes(opcodes []Opcode, s serde.Serializer) error {
	for _, op := range opcodes {
		if err := op.Serialize(s); err != nil {
			return err
		}
	}
	return nil
}

var applyAttrs = map[string][]string{
{{- range .ApplyAttrs}}
	{{quote .Key}}: { {{- range $i, $v := .Values}}{{if $i}}, {{end}}{{quote $v}}{{end}}},
{{- end}}
}

var attrFields = map[string][]string{
{{- range .AttrFields}}
	{{quote .Key}}: { {{- range $i, $v := .Values}}{{if $i}}, {{end}}{{quote $v}}{{end}}},
{{- end}}
}

type opcodeVisitor struct{ serde.UnimplementedVisitor }

func (opcodeVisitor) IsElement(name string) bool {
	switch name {
{{- range .Elements}}
	case {{quote .DisplayName}}:
		return true
{{- end}}
	}
	return false
}

func (opcodeVisitor) IsLeaf(name string) bool {
	switch name {
{{- range .Leaves}}
	case {{quote .DisplayName}}:
		return true
{{- end}}
	}
	return false
}

func (v opcodeVisitor) VisitOpcode(typeID int, d serde.Deserializer) (any, error) {
	switch typeID {
{{- range .DispatchByID}}
	case {{.Label}}:
		v, err := Deserialize{{.GoName}}(d)
		if err != nil {
			return nil, err
		}
		return {{.Opcode}}{Value: {{.Umbrella}}{{.GoName}}{Value: v}}, nil
{{- end}}
	}
	return nil, serde.UnknownType(typeID)
}

func (v opcodeVisitor) VisitOpcodeWith(name string, d serde.Deserializer) (any, error) {
	switch name {
{{- range .DispatchByName}}
	case {{.Label}}:
		v, err := Deserialize{{.GoName}}(d)
		if err != nil {
			return nil, err
		}
		return {{.Opcode}}{Value: {{.Umbrella}}{{.GoName}}{Value: v}}, nil
{{- end}}
	}
	return nil, serde.UnknownTypeName(name)
}

func (opcodeVisitor) VisitPop() (any, error) { return OpcodePop{}, nil }

// VisitOpcodeWithAttrs implements the SVG-style compact form: every
// attribute name the host runtime reports present on the current node is
// classified to an attr declaration (directly, or via that attr's own
// field names), deduplicated, sorted, and decoded ahead of the primary
// element/leaf.
func (v opcodeVisitor) VisitOpcodeWithAttrs(name string, d serde.Deserializer) (any, error) {
	kinds := map[string]struct{}{}
	for _, to := range applyAttrs[name] {
		if fields, ok := attrFields[to]; ok {
			for _, raw := range d.Attrs() {
				if raw == to {
					kinds[to] = struct{}{}
					continue
				}
				for _, f := range fields {
					if raw == f {
						kinds[to] = struct{}{}
					}
				}
			}
		}
	}

	var sorted []string
	for k := range kinds {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var out []Opcode
	for _, k := range sorted {
		r, err := v.VisitOpcodeWith(k, d)
		if err != nil {
			return nil, err
		}
		out = append(out, r.(Opcode))
	}

	primary, err := v.VisitOpcodeWith(name, d)
	if err != nil {
		return nil, err
	}
	out = append(out, primary.(Opcode))
	return out, nil
}

// DeserializeOpcodes drains d one opcode at a time until it reports a
// clean end of stream, flattening each VisitOpcodeWithAttrs batch into the
// result.
func DeserializeOpcodes(d serde.Deserializer) ([]Opcode, error) {
	var out []Opcode
	for {
		v, err := d.DeserializeOpcode(opcodeVisitor{})
		if err != nil {
			return nil, err
		}
		if v == nil {
			return out, nil
		}
		switch x := v.(type) {
		case []Opcode:
			out = append(out, x...)
		case Opcode:
			out = append(out, x)
		}
	}
}
`))

// GenerateSerde renders the codec-bindings artifact by executing serdeTmpl
// over the built Model.
func GenerateSerde(schema *ir.Schema, pkg, source string) ([]byte, error) {
	model := BuildModel(schema)

	var body strings.Builder
	if err := serdeTmpl.Execute(&body, buildSerdeData(model)); err != nil {
		return nil, fmt.Errorf("render serde template: %w", err)
	}

	file, err := renderFile(fileData{
		Banner:  banner("mlangc (serde generator)", source),
		Package: pkg,
		Imports: []string{"sort", "github.com/styles-lab/mlc/runtime/serde"},
		Body:    body.String(),
	})
	if err != nil {
		return nil, err
	}
	return formatOrWarn(file, "serde.go")
}

// declSerializeMethod and declDeserializeMethod are asymmetric by name
// (serde.Serializer spells the element writer SerializeEl, while
// serde.Deserializer spells its reader DeserializeElement) so each needs
// its own table.
func declSerializeMethod(k ir.DeclKind) string {
	switch k {
	case ir.DeclElement:
		return "SerializeEl"
	case ir.DeclLeaf:
		return "SerializeLeaf"
	case ir.DeclAttr:
		return "SerializeAttr"
	default:
		return "SerializeData"
	}
}

func declDeserializeMethod(k ir.DeclKind) string {
	switch k {
	case ir.DeclElement:
		return "DeserializeElement"
	case ir.DeclLeaf:
		return "DeserializeLeaf"
	case ir.DeclAttr:
		return "DeserializeAttr"
	default:
		return "DeserializeData"
	}
}

// buildSerdeData assembles serdeTmpl's input from a built Model: it
// filters mixins out of the declaration list (their fields were merged
// into the referring nodes by analysis), flattens the umbrellas into the
// two dispatch-case lists, and builds the sorted routing-table rows.
func buildSerdeData(model *Model) serdeTmplData {
	data := serdeTmplData{
		Enums:     model.Enums,
		Umbrellas: model.Umbrellas(),
		Elements:  model.Elements,
		Leaves:    model.Leaves,
	}
	for _, d := range model.Decls {
		if d.DeclKind == ir.DeclMixin {
			continue
		}
		data.Decls = append(data.Decls, d)
	}

	opcodeWrappers := map[string]string{
		"Element": "OpcodeElement",
		"Leaf":    "OpcodeLeaf",
		"Attr":    "OpcodeApply",
	}
	for _, u := range data.Umbrellas {
		for _, d := range u.Decls {
			data.DispatchByID = append(data.DispatchByID, dispatchCase{
				Label:    strconv.Itoa(d.Index),
				GoName:   d.GoName,
				Umbrella: u.Name,
				Opcode:   opcodeWrappers[u.Name],
			})
			data.DispatchByName = append(data.DispatchByName, dispatchCase{
				Label:    strconv.Quote(d.DisplayName),
				GoName:   d.GoName,
				Umbrella: u.Name,
				Opcode:   opcodeWrappers[u.Name],
			})
		}
	}

	data.ApplyAttrs = applyAttrRows(model)
	data.AttrFields = attrFieldRows(model)
	return data
}

// applyAttrRows derives the apply_attrs relation, display name of each
// apply-to target to the display names of the attrs applicable to it, with
// every key and set member sorted lexicographically so the emitted map
// literal is byte-identical across runs.
func applyAttrRows(model *Model) []routingRow {
	sets := map[string]map[string]struct{}{}
	for _, a := range model.ApplyTo {
		for _, toIdx := range a.TargetIdx {
			to, ok := model.declByIndex(toIdx)
			if !ok {
				continue
			}
			set := sets[to.DisplayName]
			if set == nil {
				set = map[string]struct{}{}
				sets[to.DisplayName] = set
			}
			for _, fromIdx := range a.AttrIdx {
				from, ok := model.declByIndex(fromIdx)
				if !ok {
					continue
				}
				set[from.DisplayName] = struct{}{}
			}
		}
	}

	keys := make([]string, 0, len(sets))
	for k := range sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]routingRow, 0, len(keys))
	for _, k := range keys {
		values := make([]string, 0, len(sets[k]))
		for v := range sets[k] {
			values = append(values, v)
		}
		sort.Strings(values)
		rows = append(rows, routingRow{Key: k, Values: values})
	}
	return rows
}

// attrFieldRows derives the attr_fields relation, each attr's display name
// to its named fields' display names, sorted the same way.
func attrFieldRows(model *Model) []routingRow {
	keys := make([]string, 0, len(model.Attrs))
	byDisplay := map[string]*declModel{}
	for _, d := range model.Attrs {
		keys = append(keys, d.DisplayName)
		byDisplay[d.DisplayName] = d
	}
	sort.Strings(keys)

	rows := make([]routingRow, 0, len(keys))
	for _, k := range keys {
		d := byDisplay[k]
		fields := make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			if f.DisplayName != "" {
				fields = append(fields, f.DisplayName)
			}
		}
		sort.Strings(fields)
		rows = append(rows, routingRow{Key: k, Values: fields})
	}
	return rows
}
