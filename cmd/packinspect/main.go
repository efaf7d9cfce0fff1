package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/packedints/packed"
	"github.com/wippyai/packedints/schema"
	"github.com/wippyai/packedints/snapshot"
)

func main() {
	var (
		schemaText  = flag.String("schema", "", "Field schema (name:bits,name:bits,...)")
		assignments = flag.String("set", "", "Field values (name=value,name=value,...)")
		strict      = flag.Bool("strict", false, "Reject unknown fields and values wider than their field")
		loadPath    = flag.String("load", "", "Load a snapshot instead of -schema")
		savePath    = flag.String("save", "", "Write a snapshot after applying -set")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *schemaText == "" && *loadPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: packinspect -schema <name:bits,...> [-set name=value,...] [-strict] [-save file]")
		fmt.Fprintln(os.Stderr, "       packinspect -load <file> [-set name=value,...] [-save file]")
		fmt.Fprintln(os.Stderr, "       packinspect -schema <name:bits,...> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		packed.SetLogger(logger)
		snapshot.SetLogger(logger)
	}

	if err := run(*schemaText, *loadPath, *assignments, *savePath, *strict, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(schemaText, loadPath, assignStr, savePath string, strict, interactive bool) error {
	v, err := open(schemaText, loadPath)
	if err != nil {
		return err
	}

	as, err := parseAssignments(assignStr)
	if err != nil {
		return err
	}
	ignored, err := apply(v, as, strict)
	if err != nil {
		return err
	}
	for _, name := range ignored {
		fmt.Fprintf(os.Stderr, "Warning: no field %q, value ignored\n", name)
	}

	if interactive {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return runInteractive(v, savePath, strict)
		}
		fmt.Fprintln(os.Stderr, "Warning: stdout is not a terminal, printing report")
	}

	writeReport(os.Stdout, v)

	if savePath != "" {
		if err := snapshot.Save(savePath, v); err != nil {
			return err
		}
		fmt.Printf("\nSaved %s\n", savePath)
	}
	return nil
}

func open(schemaText, loadPath string) (*packed.Value[string], error) {
	if loadPath != "" {
		v, err := snapshot.Load(loadPath)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", loadPath, err)
		}
		return v, nil
	}

	s, err := schema.Parse(schemaText)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return packed.NewType(s).New(), nil
}
