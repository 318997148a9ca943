package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	cli "gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/runtime"
)

const replPrompt = "lox> "

func replAction(*cli.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := filepath.Join(os.TempDir(), ".lox_history")
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("lox %s (interactive; Ctrl-D to exit)\n", version)
	interp := interpreter.New()

	for {
		input, err := line.Prompt(replPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		replEval(interp, input)
	}
}

// replEval runs one line of input. Expression input echoes its value;
// statement input just executes.
func replEval(interp *interpreter.Interpreter, input string) {
	tokens, err := lexer.New(input).Scan()
	if err != nil {
		reportError(err)
		return
	}

	if expr, err := parser.New(tokens).ParseExpression(); err == nil {
		val, err := interp.Evaluate(expr)
		if err != nil {
			reportError(err)
			return
		}
		fmt.Println(runtime.ShowQuoted(val))
		return
	}

	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		reportError(err)
		return
	}
	if err := interp.Interpret(program); err != nil {
		reportError(err)
	}
}
