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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kimgr/asn1gen/asn1"
	"github.com/kimgr/asn1gen/ast"
	"github.com/kimgr/asn1gen/asn1diff"
	"github.com/kimgr/asn1gen/depsort"
)

func newModuleDriftCmd() *cobra.Command {
	drift := &cobra.Command{
		Use:   "moduledrift before.asn1 after.asn1 module-name",
		RunE:  moduleDrift,
		Short: "Diffs one module's dependency-sorted components between two file revisions.",
		Args:  cobra.ExactArgs(3),
	}

	drift.Flags().Bool("full", false, "Whether the diff also lists unchanged components.")

	return drift
}

func moduleDrift(cmd *cobra.Command, args []string) error {
	full := viper.GetBool("full")

	before, err := loadModule(args[0], args[2])
	if err != nil {
		return fmt.Errorf("before: %w", err)
	}
	after, err := loadModule(args[1], args[2])
	if err != nil {
		return fmt.Errorf("after: %w", err)
	}

	diff := asn1diff.DiffComponents(args[2], depsort.Sort(before), depsort.Sort(after))
	fmt.Fprint(os.Stderr, diff.Format(full))
	return nil
}

func loadModule(path, moduleName string) (*asn1.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file, err := ast.Parse(path, src)
	if err != nil {
		return nil, err
	}
	modules, err := asn1.BuildModules(file)
	if err != nil {
		return nil, err
	}
	for _, m := range modules {
		if m.Name == moduleName {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%s: module %q not found", path, moduleName)
}
