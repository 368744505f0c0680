// Command gpuopt runs the cubin accessor pass over textual IR.
//
// Usage:
//
//	gpuopt [options] <input>
//
// Examples:
//
//	gpuopt module.ir                  # Transform and print to stdout
//	gpuopt -o out.ir module.ir        # Transform to file
//	gpuopt -print-only module.ir      # Reprint canonical form, no pass
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gogpu/gpuir"
	"github.com/gogpu/gpuir/cubin"
)

var (
	output    = flag.String("o", "", "output file (default: stdout)")
	verify    = flag.Bool("verify", true, "verify the transformed module")
	printOnly = flag.Bool("print-only", false, "print canonical form without running the pass")
	version   = flag.Bool("version", false, "print version")
)

const gpuirVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("gpuopt version %s\n", gpuirVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	inputPath := args[0]

	// Read input file
	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	// Reprint without transforming
	if *printOnly {
		module, parseErr := gpuir.Parse(string(source))
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
			os.Exit(1)
		}
		writeOutput(inputPath, gpuir.Print(module))
		return
	}

	// Run the pass
	opts := gpuir.Options{Verify: *verify}
	out, diags, err := gpuir.TransformWithOptions(string(source), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Transform error: %v\n", err)
		os.Exit(1)
	}
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inputPath, d)
	}
	if len(diags) > 0 {
		os.Exit(1)
	}

	writeOutput(inputPath, out)
}

// writeOutput writes the transformed module to -o or stdout.
func writeOutput(inputPath, out string) {
	if *output != "" {
		if err := os.WriteFile(*output, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully transformed %s to %s (%d bytes)\n", inputPath, *output, len(out))
	} else {
		fmt.Print(out)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: gpuopt [options] <input.ir>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nPasses:\n")
	fmt.Fprintf(os.Stderr, "  %s  %s\n", cubin.PassName, cubin.PassDoc)
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  gpuopt module.ir                Transform to stdout\n")
	fmt.Fprintf(os.Stderr, "  gpuopt -o out.ir module.ir      Transform to file\n")
	fmt.Fprintf(os.Stderr, "  gpuopt -print-only module.ir    Reprint canonical form only\n")
}
