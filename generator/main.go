// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Binary generator reads an ASN.1 module definition file, builds its
// parse tree and semantic model, dependency-sorts each module's
// assignments, and (unless told to stop earlier) hands the result to a
// reference back end for code generation.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/golang/glog"

	"github.com/kimgr/asn1gen/ast"
	"github.com/kimgr/asn1gen/asn1"
	"github.com/kimgr/asn1gen/depsort"
	"github.com/kimgr/asn1gen/gen"
	"github.com/kimgr/asn1gen/gen/pyasn1"
	"github.com/kimgr/asn1gen/gen/quickder"
)

var (
	stage      = flag.String("stage", "gen", "Pipeline stage to run and report on: parse, sema, or gen.")
	backendFlag = flag.String("backend", "pyasn1", "Reference back end to use when -stage=gen: pyasn1 or quickder.")
	outputFile = flag.String("output_file", "", "File the generated code is written to (single-file mode). Defaults to stdout.")
	outputDir  = flag.String("output_dir", "", "Directory the generated code is written to, one file per module (split mode).")
	split      = flag.Bool("split", false, "If set, write one output file per module to -output_dir instead of concatenating to -output_file.")
	indentSize = flag.Int("indent", 4, "Number of spaces per indent level in generated code.")
)

var backends = map[string]gen.NewFunc{
	"pyasn1":   pyasn1.New,
	"quickder": quickder.New,
}

// toolVersion is reported in the §6.4 output banner.
const toolVersion = "1.0.0"

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		log.Exitln("Error: expected exactly one source path argument")
	}
	sourcePath := args[0]

	if *outputFile != "" && *outputDir != "" {
		log.Exitf("Error: cannot specify both -output_file (%s) and -output_dir (%s)", *outputFile, *outputDir)
	}
	if *split && *outputDir == "" {
		log.Exitln("Error: -split requires -output_dir")
	}

	if err := run(sourcePath); err != nil {
		log.Exitf("Error: %v", err)
	}
}

func run(sourcePath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	file, err := ast.Parse(sourcePath, src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", sourcePath, err)
	}
	if *stage == "parse" {
		fmt.Printf("%s: parsed %d module definition(s)\n", sourcePath, len(file.Modules))
		return nil
	}

	modules, err := asn1.BuildModules(file)
	if err != nil {
		return fmt.Errorf("building semantic model for %s: %w", sourcePath, err)
	}
	if *stage == "sema" {
		fmt.Printf("%s: built %d module(s)\n", sourcePath, len(modules))
		return nil
	}

	if len(modules) > 1 && !*split {
		fmt.Fprintln(os.Stderr, "WARNING: more than one module emitted to the same stream")
	}

	newBackEnd, ok := backends[*backendFlag]
	if !ok {
		return fmt.Errorf("unknown -backend %q", *backendFlag)
	}

	resolver := asn1.NewResolver(modules)

	info := gen.SourceInfo{
		ToolName:       "asn1gen",
		Version:        toolVersion,
		SourceBasename: filepath.Base(sourcePath),
		LastModified:   sourceModTime(sourcePath),
	}

	for _, module := range modules {
		sink := gen.NewSink(*indentSize)
		components := depsort.Sort(module)
		backEnd := newBackEnd(module, resolver, components, sink, info)
		if err := backEnd.GenerateCode(); err != nil {
			return fmt.Errorf("generating code for module %s: %w", module.Name, err)
		}

		if err := writeOutput(module.Name, sink.String()); err != nil {
			return err
		}
	}
	return nil
}

// sourceModTime reports sourcePath's last-modification time for the §6.4
// banner, falling back to the current time if the stat fails (e.g. the
// caller already validated the file and a concurrent delete raced it).
func sourceModTime(sourcePath string) string {
	fi, err := os.Stat(sourcePath)
	if err != nil {
		return time.Now().Format(time.RFC3339)
	}
	return fi.ModTime().Format(time.RFC3339)
}

func writeOutput(moduleName, contents string) error {
	switch {
	case *split:
		path := filepath.Join(*outputDir, moduleName+".out")
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	case *outputFile != "":
		f, err := os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening %s: %w", *outputFile, err)
		}
		defer f.Close()
		if _, err := f.WriteString(contents); err != nil {
			return fmt.Errorf("writing %s: %w", *outputFile, err)
		}
	default:
		fmt.Print(contents)
	}
	return nil
}
