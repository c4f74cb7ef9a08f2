package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/quill/pkg/core/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		info := version.Get()
		if versionShort {
			fmt.Fprintln(out, info.Release)
			return
		}
		fmt.Fprintf(out, "quill v%s\n", info.Release)
		fmt.Fprintf(out, "  Language:   %s\n", info.Language)
		fmt.Fprintf(out, "  Git Commit: %s\n", info.Commit)
		fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print the release number only")
	rootCmd.AddCommand(versionCmd)
}
