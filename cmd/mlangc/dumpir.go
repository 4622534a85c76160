package main

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/styles-lab/mlc/ir"
)

// dumpIR renders an analyzed schema as a treeprint.Tree, one branch per
// top-level statement.
func dumpIR(schema *ir.Schema) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue("schema")

	for _, stat := range schema.Stats {
		switch s := stat.(type) {
		case *ir.Node:
			branch := tree.AddMetaBranch(s.DeclKind, s.Name.Name)
			addFields(branch, s.Fields)
		case *ir.Enum:
			branch := tree.AddMetaBranch("enum", s.Name.Name)
			for _, v := range s.Variants {
				vb := branch.AddBranch(v.Name.Name)
				addFields(vb, v.Fields)
			}
		case *ir.Group:
			branch := tree.AddMetaBranch("group", s.Name.Name)
			for _, m := range s.Members {
				branch.AddNode(m.Name)
			}
		case *ir.ApplyTo:
			branch := tree.AddMetaBranch("apply", identNames(s.Attrs))
			branch.AddNode("to " + identNames(s.Targets))
		case *ir.ChildrenOf:
			branch := tree.AddMetaBranch("children", identNames(s.Children))
			branch.AddNode("of " + identNames(s.Parents))
		}
	}
	return tree
}

func addFields(branch treeprint.Tree, fields ir.Fields) {
	switch fields.Kind {
	case ir.FieldsNamed:
		for _, f := range fields.Named {
			branch.AddNode(fmt.Sprintf("%s: %s", f.Name.Name, typeString(f.Type)))
		}
	case ir.FieldsUnnamed:
		for _, f := range fields.Unnamed {
			branch.AddNode(typeString(f.Type))
		}
	}
}

func typeString(t ir.Type) string {
	switch v := t.(type) {
	case ir.PrimitiveType:
		return v.Kind.String()
	case ir.DataType:
		return v.Target.Name
	case ir.ListOfType:
		return "[" + typeString(v.Elem) + "]"
	case ir.ArrayOfType:
		return fmt.Sprintf("[%s; %d]", typeString(v.Elem), v.Length.Uint)
	default:
		return "?"
	}
}

func identNames(idents []ir.Ident) string {
	s := ""
	for i, id := range idents {
		if i > 0 {
			s += ", "
		}
		s += id.Name
	}
	return s
}
