// Package driver wires the parse, analyze, and generate stages into the
// single entry point external callers use.
package driver

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"

	"github.com/styles-lab/mlc/analyzer"
	"github.com/styles-lab/mlc/codegen"
	"github.com/styles-lab/mlc/diagnostic"
	"github.com/styles-lab/mlc/parser"
)

// CodegenConfig controls where and how the generated artifacts are
// written.
type CodegenConfig struct {
	// WithSerde gates serde.go generation. Defaults to true if unset via
	// DefaultCodegenConfig.
	WithSerde bool
	// Target is the directory generated artifacts are written to. Empty
	// means the current directory.
	Target string
	// Package is the Go package name stamped into every artifact.
	// Defaults to "mlang" if empty.
	Package string
	// Formatter is a shell command line the generator runs against each
	// written file (e.g. "gofmt -w"); empty skips formatting entirely.
	Formatter string
	// Stderr receives formatter-failure diagnostics. Defaults to
	// os.Stderr if nil.
	Stderr io.Writer
}

// DefaultCodegenConfig returns the zero-value-safe default configuration.
func DefaultCodegenConfig() CodegenConfig {
	return CodegenConfig{WithSerde: true, Target: ".", Package: "mlang", Formatter: "gofmt -w", Stderr: os.Stderr}
}

func (c CodegenConfig) withDefaults() CodegenConfig {
	if c.Target == "" {
		c.Target = "."
	}
	if c.Package == "" {
		c.Package = "mlang"
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	return c
}

// AnalysisError reports every diagnostic the analyzer collected against an
// otherwise syntactically valid schema.
type AnalysisError struct {
	Diagnostics []error
}

func (e *AnalysisError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].Error()
	}
	return fmt.Sprintf("%d semantic errors, first: %s", len(e.Diagnostics), e.Diagnostics[0])
}

// Unwrap ties the aggregate into the parser's generic error taxonomy, so
// errors.Is(err, parser.GenericSemantic) holds for any analysis failure.
func (e *AnalysisError) Unwrap() error { return parser.GenericSemantic }

// Compile parses, analyzes, and generates source, writing opcode.go,
// (conditionally) serde.go, and mod.go into cfg.Target.
func Compile(source string, cfg CodegenConfig) error {
	cfg = cfg.withDefaults()

	schema, perr := parser.Parse("schema.mlang", source)
	if perr != nil {
		return perr
	}

	sink := &diagnostic.CollectingSink{}
	if ok := analyzer.Analyze(schema, sink); !ok {
		return &AnalysisError{Diagnostics: sink.Diagnostics}
	}

	if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
		return errors.Wrap(err, "create target directory")
	}

	opcodeSrc, err := codegen.GenerateOpcode(schema, cfg.Package, source)
	if err != nil {
		return errors.Wrap(err, "generate opcode.go")
	}
	if err := writeArtifact(cfg, "opcode.go", opcodeSrc); err != nil {
		return err
	}

	if cfg.WithSerde {
		serdeSrc, err := codegen.GenerateSerde(schema, cfg.Package, source)
		if err != nil {
			return errors.Wrap(err, "generate serde.go")
		}
		if err := writeArtifact(cfg, "serde.go", serdeSrc); err != nil {
			return err
		}
	}

	modSrc := codegen.GenerateMod(cfg.Package, source, cfg.WithSerde)
	return writeArtifact(cfg, "mod.go", modSrc)
}

// writeArtifact persists src, then runs the configured formatter over the
// written file. A formatter failure is reported but never undoes the
// write or aborts sibling artifacts.
func writeArtifact(cfg CodegenConfig, name string, src []byte) error {
	path := filepath.Join(cfg.Target, name)
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	if cfg.Formatter == "" {
		return nil
	}
	if err := runFormatter(cfg.Formatter, path); err != nil {
		fmt.Fprintf(cfg.Stderr, "mlangc: formatting %s: %v\n", path, err)
	}
	return nil
}

func runFormatter(command, path string) error {
	args, err := shellquote.Split(command)
	if err != nil {
		return errors.Wrap(err, "parse formatter command")
	}
	if len(args) == 0 {
		return nil
	}
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}
