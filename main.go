package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/interp"
	"github.com/sable-lang/sable/lexer"
	"github.com/sable-lang/sable/parser"
	"github.com/sable-lang/sable/printer"
	"github.com/sable-lang/sable/resolver"
)

const manifestName = "sable.yml"

type sableModule struct {
	Package string `yaml:"Package"`
	Main    string `yaml:"Main"`
}

// sourceFile decides which file to run: an explicit argument wins, otherwise
// the manifest in the current directory names the entry file.
func sourceFile(c *cli.Context) string {
	if name := c.Args().First(); name != "" {
		return name
	}

	data, err := ioutil.ReadFile(manifestName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "no input file and no %s: %s\n", manifestName, err)
		os.Exit(1)
	}

	var doc sableModule
	if err := yaml.Unmarshal(data, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %s\n", manifestName, err)
		os.Exit(1)
	}
	if doc.Main == "" {
		fmt.Fprintf(os.Stderr, "%s names no Main file\n", manifestName)
		os.Exit(1)
	}
	return doc.Main
}

func tokenize(name string) []lexer.Token {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		tracerr.PrintSourceColor(tracerr.Wrap(err))
		os.Exit(1)
	}

	tokens, err := lexer.New(string(data)).Tokenize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return tokens
}

// parse runs the parser and reports every collected syntax error before
// giving up.
func parse(tokens []lexer.Token) *ast.Program {
	p := parser.New(tokens)
	program := p.ParseProgram()
	if program == nil {
		for _, err := range p.Errors() {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
	return program
}

func resolve(program *ast.Program) map[ast.ExpressionID]int {
	depths, errors := resolver.Resolve(program)
	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
	return depths
}

func main() {
	app := &cli.App{
		Name:  "sable",
		Usage: "sable interpreter",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				log.Fatalf("error with sable: %s", err)
			}
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "init a directory",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						fmt.Fprintln(os.Stderr, "no module name provided")
						os.Exit(1)
					}

					yml := sableModule{
						Package: name,
						Main:    "main.sb",
					}
					out, err := yaml.Marshal(yml)
					if err != nil {
						fmt.Fprintf(os.Stderr, "error creating %s: %s\n", manifestName, err)
						os.Exit(1)
					}
					if err := ioutil.WriteFile(manifestName, out, 0o644); err != nil {
						fmt.Fprintf(os.Stderr, "error creating %s: %s\n", manifestName, err)
						os.Exit(1)
					}
					return nil
				},
			},
			{
				Name:  "tokens",
				Usage: "print a file's tokens and exit",
				Action: func(c *cli.Context) error {
					for _, token := range tokenize(sourceFile(c)) {
						repr.Println(token)
					}
					return nil
				},
			},
			{
				Name:  "ast",
				Usage: "print a file's syntax tree and exit",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "dump the tree as Go values instead of the indented form",
					},
				},
				Action: func(c *cli.Context) error {
					program := parse(tokenize(sourceFile(c)))
					if c.Bool("raw") {
						repr.Println(program)
						return nil
					}
					fmt.Printf("Parsed program:\n%s", printer.New().Print(program))
					return nil
				},
			},
			{
				Name:  "run",
				Usage: "run a file",
				Action: func(c *cli.Context) error {
					program := parse(tokenize(sourceFile(c)))
					depths := resolve(program)

					control := interp.New(depths, os.Stdout).Run(program)
					if control == nil {
						fmt.Println("Program executed successfully.")
						return nil
					}

					switch control.Signal {
					case interp.SignalContinue:
						fmt.Fprintln(os.Stderr, "Error: Program continued outside of a loop.")
					case interp.SignalBreak:
						fmt.Fprintln(os.Stderr, "Error: Program broke outside of a loop.")
					case interp.SignalReturn:
						fmt.Fprintf(os.Stderr, "Error: Program returned outside of a function: %s\n", control.Value)
					case interp.SignalRuntimeError:
						fmt.Fprintf(os.Stderr, "Runtime error: %s\n", control.Message)
					}
					os.Exit(1)
					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
