package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-tacc/tacc/pkg/ir"
	"github.com/go-tacc/tacc/pkg/irgen"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	verbose bool
	outPath string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tacc [fixture.yaml]",
		Short: "tacc lowers a decorated syntax tree to three-address IR",
		Long: `tacc reads a YAML fixture describing an already-decorated syntax
tree (see cmd/tacc/fixture.go) and prints the three-address IR program
the lowering pass produces for it. It does not parse or type-check C
source — that stage is out of this module's scope.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return translateFile(args[0], out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each translation step to stderr")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "write IR text to this file instead of stdout")

	return rootCmd
}

func translateFile(path string, out, errOut io.Writer) error {
	fx, err := LoadFixture(path)
	if err != nil {
		fmt.Fprintf(errOut, "tacc: %v\n", err)
		return err
	}

	prog, err := fx.Build()
	if err != nil {
		fmt.Fprintf(errOut, "tacc: %v\n", err)
		return err
	}

	var log *slog.Logger
	if verbose {
		log = slog.New(slog.NewTextHandler(errOut, nil))
	}

	result, err := irgen.Translate(prog, log)
	if err != nil {
		fmt.Fprintf(errOut, "tacc: %v\n", err)
		return err
	}

	w := out
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintf(errOut, "tacc: %v\n", err)
			return err
		}
		defer f.Close()
		w = f
	}

	ir.Print(w, result)
	return nil
}
