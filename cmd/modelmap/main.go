/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/suparena/objectstore"
	"github.com/suparena/objectstore/modelmap"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	inFlag      = flag.String("in", "", "Path to the model map YAML (or MODELMAP_INPUT)")
	outFlag     = flag.String("out", "", "Path of the generated Go file (or MODELMAP_OUTPUT)")
)

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := objectstore.GetVersionInfo()
		fmt.Printf("ObjectStore modelmap version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	// A .env beside the invocation can supply the paths; absence is fine.
	_ = godotenv.Load()

	input := *inFlag
	if input == "" {
		input = os.Getenv("MODELMAP_INPUT")
	}
	output := *outFlag
	if output == "" {
		output = os.Getenv("MODELMAP_OUTPUT")
	}
	if input == "" || output == "" {
		fmt.Fprintln(os.Stderr, "modelmap: both -in and -out are required (or MODELMAP_INPUT/MODELMAP_OUTPUT)")
		os.Exit(2)
	}

	if err := modelmap.Run(input, output); err != nil {
		fmt.Fprintf(os.Stderr, "modelmap: %v\n", err)
		os.Exit(1)
	}
}
