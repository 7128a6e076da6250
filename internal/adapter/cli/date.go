package cli

import (
	"resume-builder/internal/resumedoc"

	"github.com/spf13/cobra"
)

var dateCmd = &cobra.Command{
	Use:   "date",
	Short: "Normalize date literals",
}

var dateCanonicalCmd = &cobra.Command{
	Use:   "canonical [value...]",
	Short: "Print values as YYYY-MM-DD",
	Long:  `Prints each value in canonical form. Present and values that cannot be read print as an empty line.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, v := range args {
			cmd.Println(resumedoc.ToCanonical(v))
		}
	},
}

var dateAbbrevCmd = &cobra.Command{
	Use:   "abbrev [value...]",
	Short: `Print values as "Mon YYYY"`,
	Long:  `Prints each value in abbreviated form. Present and values that cannot be read are printed unchanged.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, v := range args {
			cmd.Println(resumedoc.ToAbbreviated(v))
		}
	},
}

func init() {
	dateCmd.AddCommand(dateCanonicalCmd)
	dateCmd.AddCommand(dateAbbrevCmd)
	rootCmd.AddCommand(dateCmd)
}
