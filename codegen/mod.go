package codegen

import "fmt"

// GenerateMod renders the top-level index artifact. Since opcode.go, (optionally)
// serde.go, and this file all share one Go package, there is nothing to
// re-export, every declaration is already in scope, so this artifact
// carries only the banner and the package's doc comment.
func GenerateMod(pkg, source string, withSerde bool) []byte {
	doc := fmt.Sprintf("// Package %s is generated from an mlang schema: a data model (opcode.go)", pkg)
	if withSerde {
		doc += " and its serialization bindings (serde.go)."
	} else {
		doc += "."
	}
	return []byte(fmt.Sprintf("%s%s\npackage %s\n", banner("mlangc", source), doc, pkg))
}
