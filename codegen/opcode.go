package codegen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/styles-lab/mlc/ir"
)

// opcodeTmplData is the opcode template's input: the declaration, enum,
// and umbrella slices of one built Model.
type opcodeTmplData struct {
	Decls     []*declModel
	Enums     []*declModel
	Umbrellas []umbrellaModel
}

// opcodeTmpl renders the data-model body: one record type per
// el/leaf/attr/data/mixin declaration, one closed-sum type per enum with a
// record per variant, the three categorical umbrella sums, and the
// top-level Opcode sum.
var opcodeTmpl = template.Must(template.New("opcode").Funcs(tmplFuncs).Parse(`
{{- range .Decls}}
// {{.GoName}} is the data-model record for the {{quote .DisplayName}} declaration.
type {{.GoName}} struct {
{{- range .Fields}}
	{{.GoName}} {{.GoType}}
{{- end}}
}
{{end}}

{{- range $e := .Enums}}
// {{$e.GoName}}Kind tags {{$e.GoName}}'s declared variants.
type {{$e.GoName}}Kind int

const (
{{- range $i, $v := $e.Variants}}
{{- if eq $i 0}}
	{{$e.GoName}}Kind{{$v.GoName}} {{$e.GoName}}Kind = iota
{{- else}}
	{{$e.GoName}}Kind{{$v.GoName}}
{{- end}}
{{- end}}
)

type {{$e.GoName}} interface {
	{{lowerFirst $e.GoName}}Node()
	Kind() {{$e.GoName}}Kind
}
{{range $v := $e.Variants}}
// {{$e.GoName}}{{$v.GoName}} is the data-model record for the {{quote $v.DisplayName}} variant.
type {{$e.GoName}}{{$v.GoName}} struct {
{{- range $v.Fields}}
	{{.GoName}} {{.GoType}}
{{- end}}
}

func ({{$e.GoName}}{{$v.GoName}}) {{lowerFirst $e.GoName}}Node() {}
func ({{$e.GoName}}{{$v.GoName}}) Kind() {{$e.GoName}}Kind { return {{$e.GoName}}Kind{{$v.GoName}} }
{{end}}
{{- end}}

{{- range $u := .Umbrellas}}
type {{$u.Name}}Kind int

const (
{{- range $i, $d := $u.Decls}}
{{- if eq $i 0}}
	{{$u.Name}}Kind{{$d.GoName}} {{$u.Name}}Kind = iota
{{- else}}
	{{$u.Name}}Kind{{$d.GoName}}
{{- end}}
{{- end}}
)

type {{$u.Name}} interface {
	{{lowerFirst $u.Name}}Node()
	Kind() {{$u.Name}}Kind
	Serialize(serde.Serializer) error
}
{{range $d := $u.Decls}}
type {{$u.Name}}{{$d.GoName}} struct {
	Value {{$d.GoName}}
}

func ({{$u.Name}}{{$d.GoName}}) {{lowerFirst $u.Name}}Node() {}
func ({{$u.Name}}{{$d.GoName}}) Kind() {{$u.Name}}Kind { return {{$u.Name}}Kind{{$d.GoName}} }
{{end}}
{{- end}}
type OpcodeKind int

const (
	OpcodeKindApply OpcodeKind = iota
	OpcodeKindElement
	OpcodeKindLeaf
	OpcodeKindPop
)

type Opcode interface {
	opcodeNode()
	Kind() OpcodeKind
	Serialize(serde.Serializer) error
}

type OpcodeApply struct {
	Value Attr
}

func (OpcodeApply) opcodeNode()      {}
func (OpcodeApply) Kind() OpcodeKind { return OpcodeKindApply }

type OpcodeElement struct {
	Value Element
}

func (OpcodeElement) opcodeNode()      {}
func (OpcodeElement) Kind() OpcodeKind { return OpcodeKindElement }

type OpcodeLeaf struct {
	Value Leaf
}

func (OpcodeLeaf) opcodeNode()      {}
func (OpcodeLeaf) Kind() OpcodeKind { return OpcodeKindLeaf }

type OpcodePop struct{}

func (OpcodePop) opcodeNode()      {}
func (OpcodePop) Kind() OpcodeKind { return OpcodeKindPop }
`))

// GenerateOpcode renders the data-model artifact by executing opcodeTmpl
// over the built Model. source is the original schema text, used only to
// stamp the artifact's banner digest.
func GenerateOpcode(schema *ir.Schema, pkg, source string) ([]byte, error) {
	model := BuildModel(schema)

	var body strings.Builder
	err := opcodeTmpl.Execute(&body, opcodeTmplData{
		Decls:     model.Decls,
		Enums:     model.Enums,
		Umbrellas: model.Umbrellas(),
	})
	if err != nil {
		return nil, fmt.Errorf("render opcode template: %w", err)
	}

	file, err := renderFile(fileData{
		Banner:  banner("mlangc (opcode generator)", source),
		Package: pkg,
		Imports: []string{"github.com/styles-lab/mlc/runtime/serde"},
		Body:    body.String(),
	})
	if err != nil {
		return nil, err
	}
	return formatOrWarn(file, "opcode.go")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
