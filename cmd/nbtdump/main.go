package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/enkvadrat/nbt"
	"github.com/enkvadrat/nbt/snbt"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to binary NBT file")
		textFile    = flag.String("snbt", "", "Path to SNBT text file")
		outFile     = flag.String("out", "", "Write binary NBT to this path instead of printing")
		compact     = flag.Bool("compact", false, "Print compact SNBT instead of the indented dump")
		stats       = flag.Bool("stats", false, "Print tree statistics and exit")
		verbose     = flag.Bool("v", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if (*inFile == "") == (*textFile == "") {
		fmt.Fprintln(os.Stderr, "Usage: nbtdump -in <file.nbt> [-compact] [-stats] [-out file.nbt]")
		fmt.Fprintln(os.Stderr, "       nbtdump -snbt <file.snbt> [-out file.nbt]")
		fmt.Fprintln(os.Stderr, "       nbtdump -in <file.nbt> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		nbt.SetLogger(logger)
	}

	tree, name, err := load(*inFile, *textFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(tree, name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(tree, name, *outFile, *compact, *stats); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads a tree from whichever input was given: binary NBT or SNBT text.
func load(inFile, textFile string) (*nbt.Tree, string, error) {
	if inFile != "" {
		data, err := os.ReadFile(inFile)
		if err != nil {
			return nil, "", fmt.Errorf("read file: %w", err)
		}
		tree, err := nbt.Decode(data)
		if err != nil {
			return nil, "", fmt.Errorf("decode: %w", err)
		}
		return tree, inFile, nil
	}

	data, err := os.ReadFile(textFile)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	tree, err := snbt.Parse(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("parse: %w", err)
	}
	return tree, textFile, nil
}

func run(tree *nbt.Tree, name, outFile string, compact, statsOnly bool) error {
	if statsOnly {
		fmt.Printf("File: %s\n", name)
		fmt.Printf("Root name: %q\n", tree.Name())
		fmt.Printf("Nodes: %d\n", tree.Count())
		fmt.Printf("Root entries: %d\n", tree.Root().Len())
		return nil
	}

	if outFile != "" {
		data, err := tree.Encode()
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := os.WriteFile(outFile, data, 0o644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		return nil
	}

	if compact {
		fmt.Println(tree.String())
		return nil
	}
	tree.Dump(os.Stdout)
	return nil
}
