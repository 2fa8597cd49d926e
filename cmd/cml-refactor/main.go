// Package main provides the cml-refactor command line tool.
//
// cml-refactor applies semantic refactorings to Context Mapper (CML)
// models and writes back minimal text edits:
//   - list: show the available refactorings
//   - check: load and link every document below a directory
//   - format: print documents canonically
//   - refactor: run one refactoring
//   - script: run a YAML batch of refactorings
//   - dump: show the model graph of a document
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
