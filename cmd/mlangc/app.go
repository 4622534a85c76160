package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v2"

	"github.com/styles-lab/mlc/analyzer"
	"github.com/styles-lab/mlc/diagnostic"
	"github.com/styles-lab/mlc/driver"
	"github.com/styles-lab/mlc/parser"
)

// App builds the mlangc command line, a single-command compiler with one
// verb.
func App() *cli.App {
	app := cli.NewApp()
	app.Name = "mlangc"
	app.Usage = "compiles an mlang schema to a generated data model and codec"
	app.Description = "mlang schema compiler: parse, analyze, generate"
	app.ArgsUsage = "<file|->"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "target",
			Aliases: []string{"t"},
			Usage:   "directory generated artifacts are written to",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "package",
			Usage: "Go package name stamped into generated artifacts",
			Value: "mlang",
		},
		&cli.BoolFlag{
			Name:  "with-serde",
			Usage: "also generate serde.go",
			Value: true,
		},
		&cli.StringFlag{
			Name:  "formatter",
			Usage: "shell command invoked on every generated file; empty skips formatting",
			Value: "gofmt -w",
		},
		&cli.BoolFlag{
			Name:  "dump-ir",
			Usage: "print the analyzed schema as a tree instead of generating code",
		},
		&cli.BoolFlag{
			Name:  "color",
			Usage: "colorize diagnostic output",
			Value: true,
		},
	}
	app.Action = compileAction
	return app
}

func compileAction(c *cli.Context) error {
	src, err := readSource(c)
	if err != nil {
		return err
	}
	color := c.Bool("color")
	diagSrc := diagnostic.NewSource("schema.mlang", src)

	if c.Bool("dump-ir") {
		schema, perr := parser.Parse("schema.mlang", src)
		if perr != nil {
			return renderErr(perr, diagSrc, color)
		}
		sink := diagnostic.NewLogrusSink()
		analyzer.Analyze(schema, sink)
		fmt.Println(dumpIR(schema))
		return nil
	}

	err = driver.Compile(src, driver.CodegenConfig{
		Target:    c.String("target"),
		Package:   c.String("package"),
		WithSerde: c.Bool("with-serde"),
		Formatter: c.String("formatter"),
		Stderr:    os.Stderr,
	})
	if err != nil {
		return renderErr(err, diagSrc, color)
	}
	return nil
}

// renderErr turns a parse/analysis failure into a plain error carrying
// aurora-colorized, span-underlined text, so cli.App's own error printer
// does not need to know about diagnostic.Render.
func renderErr(err error, src *diagnostic.Source, color bool) error {
	var analysisErr *driver.AnalysisError
	if errors.As(err, &analysisErr) {
		return fmt.Errorf("%s", diagnostic.RenderAll(analysisErr.Diagnostics, src, color))
	}
	return fmt.Errorf("%s", diagnostic.Render(err, src, color))
}

func readSource(c *cli.Context) (string, error) {
	arg := c.Args().First()
	if arg == "" || arg == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
