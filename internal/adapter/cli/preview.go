package cli

import (
	"context"
	"os"

	"resume-builder/internal/config"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render a resume to PDF with headless Chrome",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var (
	previewOut    string
	previewFormat string
	previewHTML   bool
)

// newRenderer is replaced in tests.
var newRenderer = func(cfg config.Config) usecase.Renderer {
	return infra.NewChromedpRenderer(cfg.ChromePath, cfg.TemplatesDir)
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "output", "o", "resume.pdf", "Output file")
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", "", "Input format (text, json); guessed from the extension when empty")
	previewCmd.Flags().BoolVar(&previewHTML, "html", false, "Write the rendered HTML instead of a PDF")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, err := load(cmd, args[0], previewFormat)
	if err != nil {
		return err
	}
	p := usecase.NewProcessor(newRenderer(cfg), nil, nil, cfg.TemplatesDir, nil)

	var out []byte
	if previewHTML {
		html, err := p.RenderHTML(rec)
		if err != nil {
			return err
		}
		out = []byte(html)
	} else {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if out, err = p.Preview(ctx, rec); err != nil {
			return err
		}
	}

	if err := os.WriteFile(previewOut, out, 0o644); err != nil {
		return err
	}
	cmd.Printf("wrote %s (%d bytes)\n", previewOut, len(out))
	return nil
}
