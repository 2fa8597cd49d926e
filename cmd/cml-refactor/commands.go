package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/config"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/model"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/refactor"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/resolve"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/workspace"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available refactorings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			for _, c := range refactor.Commands() {
				fmt.Fprintf(tw, "%s %s\t%s\n", c.Name, c.Params, c.Summary)
			}

			return tw.Flush()
		},
	}
}

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Load and link every CML document below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			loader := resolve.NewLoader(nil, a.logger)

			uris, err := loader.Documents(cmd.Context(), root)
			if err != nil {
				return err
			}

			failed := 0

			for _, uri := range uris {
				if _, err := loader.Open(cmd.Context(), uri); err != nil {
					failed++

					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", uri)
					printError(cmd.OutOrStdout(), err)

					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", uri)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d document(s) failed", failed, len(uris))
			}

			return nil
		},
	}
}

func formatCmd(a *app) *cobra.Command {
	var document string

	var write bool

	c := &cobra.Command{
		Use:   "format",
		Short: "Print a document and its imports canonically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := a.open(cmd, document)
			if err != nil {
				return err
			}

			changes, err := ws.Format()
			if err != nil {
				return err
			}

			if write || a.cfg.Write {
				return ws.Write(cmd.Context(), changes)
			}

			printDocuments(cmd.OutOrStdout(), changes)

			return nil
		},
	}

	c.Flags().StringVarP(&document, "document", "d", "", "Document to format")
	c.Flags().BoolVar(&write, "write", false, "Write the documents instead of listing edits")

	return c
}

func refactorCmd(a *app) *cobra.Command {
	var document, target, output string

	var write bool

	c := &cobra.Command{
		Use:   "refactor <command> [args...]",
		Short: "Apply one refactoring",
		Long:  "Apply one refactoring. Run \"cml-refactor list\" for the commands and their parameters.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(cmd, document)
			if err != nil {
				return err
			}

			out, err := ws.Refactor(target, workspace.Invocation{Command: args[0], Args: args[1:]})
			if err != nil {
				return err
			}

			return a.finish(cmd, ws, out, output, write)
		},
	}

	c.Flags().StringVarP(&document, "document", "d", "", "Document to refactor")
	c.Flags().StringVar(&target, "target", "", "Imported document receiving created elements (default: the document)")
	c.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text|yaml")
	c.Flags().BoolVar(&write, "write", false, "Write the documents instead of listing edits")

	return c
}

func scriptCmd(a *app) *cobra.Command {
	var document, output string

	var write bool

	c := &cobra.Command{
		Use:   "script <file.yaml>",
		Short: "Apply a batch of refactorings; all take effect or none",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadScript(args[0])
			if err != nil {
				return err
			}

			if res := config.ValidateScript(s, refactor.NewRegistry().Names()); !res.IsValid() {
				return fmt.Errorf("invalid script %s: %w", args[0], res.Error())
			}

			if document == "" && s.Document != "" {
				document = s.Document
				if !filepath.IsAbs(document) {
					document = filepath.Join(filepath.Dir(args[0]), document)
				}
			}

			ws, err := a.open(cmd, document)
			if err != nil {
				return err
			}

			invs := make([]workspace.Invocation, 0, len(s.Steps))
			for _, step := range s.Steps {
				invs = append(invs, workspace.Invocation{Command: step.Command, Args: step.Args})
			}

			out, err := ws.Run("", invs...)
			if err != nil {
				return err
			}

			return a.finish(cmd, ws, out, output, write)
		},
	}

	c.Flags().StringVarP(&document, "document", "d", "", "Document to refactor (default: the script's document)")
	c.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text|yaml")
	c.Flags().BoolVar(&write, "write", false, "Write the documents instead of listing edits")

	return c
}

func dumpCmd(a *app) *cobra.Command {
	var document string

	c := &cobra.Command{
		Use:   "dump [name]",
		Short: "Dump the model of a document, or the elements with the given name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.open(cmd, document)
			if err != nil {
				return err
			}

			cs := spew.ConfigState{
				Indent:                  "  ",
				DisablePointerAddresses: true,
				DisableCapacities:       true,
				SortKeys:                true,
			}

			set := ws.Set()
			if len(args) == 0 {
				cs.Fdump(cmd.OutOrStdout(), set.Primary().RootElements())
				return nil
			}

			nodes := model.NewIndex(set).ByName(args[0], namedKinds()...)
			if len(nodes) == 0 {
				return fmt.Errorf("no element is named %q", args[0])
			}

			cs.Fdump(cmd.OutOrStdout(), nodes)

			return nil
		},
	}

	c.Flags().StringVarP(&document, "document", "d", "", "Document to dump")

	return c
}

func (a *app) open(cmd *cobra.Command, flag string) (*workspace.Workspace, error) {
	doc, err := a.document(flag)
	if err != nil {
		return nil, err
	}

	return workspace.Open(cmd.Context(), nil, doc, a.logger)
}

func (a *app) finish(cmd *cobra.Command, ws *workspace.Workspace, out *workspace.Outcome, output string, write bool) error {
	if write || a.cfg.Write {
		if err := ws.Write(cmd.Context(), out.Documents); err != nil {
			return err
		}
	}

	return printOutcome(cmd.OutOrStdout(), out, output)
}

func namedKinds() []model.Kind {
	var kinds []model.Kind
	for k := model.KindContextMap; k <= model.KindValueElicitation; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}
