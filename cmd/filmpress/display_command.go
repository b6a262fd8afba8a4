package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"filmpress/internal/container"
	"filmpress/internal/display"
	"filmpress/internal/scanner"
)

func newDisplayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "display",
		Short: "Probe input files and show their streams",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			files, err := scanner.List(ctx.scanOptions())
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no input files found")
			}

			containers, failures := probeAll(cmd.Context(), cfg, files)

			out := cmd.OutOrStdout()
			for _, c := range containers {
				printContainer(out, c)
			}
			for _, failure := range failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", failure.Path, failure.Err)
			}
			if len(containers) == 0 {
				return fmt.Errorf("no input files could be probed")
			}
			return nil
		},
	}
}

func printContainer(out io.Writer, c *container.Container) {
	fmt.Fprintf(out, "File: %s\n", c.SourcePath)
	if c.Labels.Title != "" {
		fmt.Fprintf(out, "Title: %s\n", c.Labels.Title)
	}
	fmt.Fprintln(out, display.ContainerSummary(c))
	fmt.Fprintln(out, streamTable(c))
	fmt.Fprintf(out, "Output: %s\n\n", c.OutputPath())
}

func streamTable(c *container.Container) string {
	selected := make(map[int]bool)
	for _, index := range c.Selected() {
		selected[index] = true
	}

	rows := make([][]string, 0, len(c.Streams))
	for _, s := range c.Streams {
		title := s.Labels.Title
		rows = append(rows, []string{
			strconv.Itoa(s.Index),
			display.StreamInfo(s),
			display.StreamSpecs(s),
			title,
			yesNo(selected[s.Index]),
		})
	}
	return renderTable([]string{"#", "Stream", "Details", "Title", "Selected"}, rows, 0)
}
