package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	cli "gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
)

const version = "0.1.0"

var errorHeader = color.New(color.FgRed, color.Bold)

func main() {
	app := cli.NewApp()
	app.Name = "lox"
	app.Usage = "tree-walking interpreter for the Lox scripting language"
	app.Version = version
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "run a script file or a manifest target",
			ArgsUsage: "[file|target]",
			Action:    runAction,
		},
		{
			Name:   "repl",
			Usage:  "start an interactive session",
			Action: replAction,
		},
	}
	// Bare `lox file.lox` behaves like `lox run file.lox`.
	app.Action = runAction

	if err := app.Run(os.Args); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return runDefaultTarget()
	}
	if c.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", c.Args()[1:])
	}
	return runEntry(c.Args().First())
}

// runDefaultTarget executes the entry script of the nearest manifest.
func runDefaultTarget() error {
	manifestPath, err := driver.FindManifest(".")
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return fmt.Errorf("lox run requires a source file or a manifest target (%s not found)", driver.ManifestFileName)
		}
		return err
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	entry, err := manifest.DefaultTarget()
	if err != nil {
		return err
	}
	return executeFile(entry)
}

// runEntry treats the argument as a manifest target name first, then as a
// direct script path.
func runEntry(candidate string) error {
	if manifestPath, err := driver.FindManifest("."); err == nil {
		manifest, loadErr := driver.LoadManifest(manifestPath)
		if loadErr != nil {
			return loadErr
		}
		if entry, ok := manifest.FindTarget(candidate); ok {
			return executeFile(entry)
		}
	} else if !errors.Is(err, driver.ErrManifestNotFound) {
		return err
	}
	return executeFile(candidate)
}

func executeFile(path string) error {
	return executeFileTo(os.Stdout, path)
}

func executeFileTo(w io.Writer, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	program, err := parser.ParseSource(string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	interp := interpreter.New()
	interp.SetOutput(w)
	return interp.Interpret(program)
}

func reportError(err error) {
	var runtimeErr *interpreter.RuntimeError
	if errors.As(err, &runtimeErr) {
		errorHeader.Fprint(os.Stderr, "runtime error: ")
	} else {
		errorHeader.Fprint(os.Stderr, "error: ")
	}
	fmt.Fprintln(os.Stderr, err)
}
