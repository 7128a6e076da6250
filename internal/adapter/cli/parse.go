package cli

import (
	"fmt"
	"text/tabwriter"

	"resume-builder/internal/model"
	"resume-builder/internal/resumedoc"
	"resume-builder/internal/usecase"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a resume and print it",
	Long:  `Parses a resume file ("-" for stdin) and prints it as transport JSON or normalized text.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var explainCmd = &cobra.Command{
	Use:   "explain [file]",
	Short: "Show how each line of a text resume is classified",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a resume against the generation payload schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var (
	parseFormat string
	parseTo     string
)

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Input format (text, json); guessed from the extension when empty")
	parseCmd.Flags().StringVarP(&parseTo, "to", "t", usecase.FormatJSON, "Output format (text, json)")
	validateCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Input format (text, json); guessed from the extension when empty")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(validateCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	rec, err := load(cmd, args[0], parseFormat)
	if err != nil {
		return err
	}
	out, _, err := usecase.NewProcessor(nil, nil, nil, "", nil).Export(rec, parseTo)
	if err != nil {
		return err
	}
	cmd.Print(string(out))
	if len(out) > 0 && out[len(out)-1] != '\n' {
		cmd.Println()
	}
	return nil
}

func runExplain(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	steps, err := resumedoc.Explain(data)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tKIND\tRULE\tOUTCOME\tTEXT")
	for _, s := range steps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%q\n", s.Line, s.Class.Kind, s.Class.Rule, s.Outcome, s.Text)
	}
	return w.Flush()
}

func runValidate(cmd *cobra.Command, args []string) error {
	rec, err := load(cmd, args[0], parseFormat)
	if err != nil {
		return err
	}
	if err := model.Validate(resumedoc.ToTransport(rec)); err != nil {
		return err
	}
	cmd.Printf("%s: valid\n", args[0])
	return nil
}
