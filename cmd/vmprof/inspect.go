package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/vmprof/profiler"
)

func loadDocument(path string) (*profiler.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := profiler.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE",
		Short: "Show record counts and per-unit compilation tiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func newBytecodesCmd() *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "bytecodes FILE",
		Short: "Show recorded bytecode snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			return printBytecodes(cmd.OutOrStdout(), doc, index)
		},
	}
	cmd.Flags().IntVar(&index, "index", -1, "Show only the record with this index")
	return cmd
}

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events FILE",
		Short: "Show the event log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func printSummary(w io.Writer, doc *profiler.Document) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %d\n", bold("bytecodes:"), len(doc.Bytecodes))
	fmt.Fprintf(w, "%s %d\n", bold("compilations:"), len(doc.Compilations))
	fmt.Fprintf(w, "%s %d\n", bold("events:"), len(doc.Events))

	if len(doc.Compilations) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "UNIT\tKIND\tUID")
	for _, c := range doc.Compilations {
		name := "?"
		if c.Bytecodes >= 0 && c.Bytecodes < len(doc.Bytecodes) {
			name = doc.Bytecodes[c.Bytecodes].Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, c.Kind, c.UID)
	}
	tw.Flush()
}

func printBytecodes(w io.Writer, doc *profiler.Document, index int) error {
	for _, b := range doc.Bytecodes {
		if index >= 0 && b.Index != index {
			continue
		}
		header := color.New(color.Bold).SprintfFunc()
		fmt.Fprintf(w, "%s hash=%s\n", header("#%d %s", b.Index, b.Name), b.Hash)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, instr := range b.Instructions {
			operands := make([]string, len(instr.Operands))
			for i, operand := range instr.Operands {
				operands[i] = fmt.Sprintf("%d", operand)
			}
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n",
				instr.Offset, instr.Opcode, strings.Join(operands, ", "), instr.Comment)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}
	if index >= 0 && index >= len(doc.Bytecodes) {
		return fmt.Errorf("no bytecode record with index %d", index)
	}
	return nil
}

func printEvents(w io.Writer, doc *profiler.Document) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tUNIT\tCOMPILATION\tSUMMARY\tDETAIL")
	for _, e := range doc.Events {
		name := "?"
		if e.Bytecodes >= 0 && e.Bytecodes < len(doc.Bytecodes) {
			name = doc.Bytecodes[e.Bytecodes].Name
		}
		compilation := "-"
		if e.Compilation != nil && *e.Compilation >= 0 && *e.Compilation < len(doc.Compilations) {
			compilation = doc.Compilations[*e.Compilation].Kind
		}
		sec := int64(e.Time)
		nsec := int64((e.Time - float64(sec)) * 1e9)
		stamp := time.Unix(sec, nsec).UTC().Format(time.RFC3339)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", stamp, name, compilation, e.Summary, e.Detail)
	}
	tw.Flush()
}
