package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dlclark/re2compat"
)

var explainCmd = &cobra.Command{
	Use:   "explain PATTERN",
	Short: "show how a pattern is translated and which engine runs it",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	c, flags, err := newCompiler(cmd)
	if err != nil {
		return err
	}
	p, err := re2compat.CompileWith(c, args[0], flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pattern:    %s\n", p.String())
	fmt.Fprintf(out, "flags:      %s\n", p.Flags())
	fmt.Fprintf(out, "engine:     %s\n", p.Engine())
	if p.Engine() == re2compat.Automaton {
		fmt.Fprintf(out, "translated: %s\n", p.Translated())
	} else {
		fmt.Fprintf(out, "reason:     %v\n", p.FallbackReason())
	}
	fmt.Fprintf(out, "groups:     %d\n", p.Groups())

	index := p.GroupIndex()
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return index[names[i]] < index[names[j]] })
	for _, name := range names {
		fmt.Fprintf(out, "  %d: %s\n", index[name], name)
	}
	return nil
}
