package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/diagnostic"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/serialize"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/workspace"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

type changeView struct {
	Op   string `yaml:"op"`
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
	URI  string `yaml:"uri"`
	Was  string `yaml:"was,omitempty"`
}

type documentView struct {
	URI         string               `yaml:"uri"`
	Fingerprint string               `yaml:"fingerprint"`
	Edits       []serialize.TextEdit `yaml:"edits"`
}

type outcomeView struct {
	Skipped   bool           `yaml:"skipped"`
	Changes   []changeView   `yaml:"changes,omitempty"`
	Documents []documentView `yaml:"documents,omitempty"`
}

func printOutcome(w io.Writer, out *workspace.Outcome, format string) error {
	switch format {
	case outputYAML:
		view := outcomeView{Skipped: out.Skipped}
		for _, c := range out.Changes {
			view.Changes = append(view.Changes, changeView{
				Op: string(c.Op), Kind: c.Kind.String(), Name: c.Name, URI: c.URI, Was: c.Was,
			})
		}

		for _, d := range out.Documents {
			view.Documents = append(view.Documents, documentView{
				URI: d.URI, Fingerprint: fmt.Sprintf("%016x", d.Fingerprint), Edits: d.Edits,
			})
		}

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(view); err != nil {
			return err
		}

		return enc.Close()
	case outputText:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, outputText, outputYAML)
	}

	if out.Skipped {
		fmt.Fprintln(w, "nothing to do")
		return nil
	}

	for _, c := range out.Changes {
		fmt.Fprintln(w, c.String())
	}

	printDocuments(w, out.Documents)

	return nil
}

func printDocuments(w io.Writer, docs []serialize.DocumentChange) {
	for _, d := range docs {
		fmt.Fprintf(w, "--- %s (%d edit(s))\n", d.URI, len(d.Edits))

		for _, e := range d.Edits {
			fmt.Fprintf(w, "@@ %d:%d-%d:%d @@\n", e.Range.Start.Line+1, e.Range.Start.Character+1,
				e.Range.End.Line+1, e.Range.End.Character+1)

			if e.NewText != "" {
				fmt.Fprint(w, indent(e.NewText))
			}
		}
	}
}

// printError lists the individual reasons of a load failure.
func printError(w io.Writer, err error) {
	var links diagnostic.LinkErrors
	if errors.As(err, &links) {
		for _, le := range links {
			fmt.Fprintf(w, "  %s\n", le.Error())
		}

		return
	}

	fmt.Fprintf(w, "  %s\n", err.Error())
}

func indent(text string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}

		b.WriteString("+ ")
		b.WriteString(line)
	}

	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}

	return b.String()
}
