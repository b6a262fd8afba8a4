package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var fileFlag string
	var dirFlag string
	var recursiveFlag bool
	var configFlag string

	ctx := newCommandContext(&fileFlag, &dirFlag, &recursiveFlag, &configFlag)

	rootCmd := &cobra.Command{
		Use:           "filmpress",
		Short:         "Batch media conversion with ffmpeg",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Convert a single file")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "directory", "d", "", "Convert all files in a directory")
	rootCmd.PersistentFlags().BoolVarP(&recursiveFlag, "recursive", "r", false, "Descend into subdirectories")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.MarkFlagsMutuallyExclusive("file", "directory")
	rootCmd.MarkFlagsMutuallyExclusive("file", "recursive")

	rootCmd.AddCommand(newDisplayCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
