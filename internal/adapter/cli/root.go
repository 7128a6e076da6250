// Package cli implements the resumectl command line.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-builder/internal/config"
	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "resumectl",
	Short:         "Parse, convert and render resumes",
	Long:          `resumectl reads resumes in the indented text format or as transport JSON, converts between them and renders PDF previews.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.Setup(logLevel, cmd.ErrOrStderr(), false)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "resume.toml", "Path to the TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// inputFormat returns the explicit format, or guesses it from the extension.
func inputFormat(explicit, path string) string {
	if explicit != "" {
		return explicit
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return usecase.FormatJSON
	}
	return usecase.FormatText
}

// load reads and decodes a resume file with a processor that has no
// renderer, generator or draft store attached.
func load(cmd *cobra.Command, path, format string) (*domain.ResumeRecord, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	return usecase.NewProcessor(nil, nil, nil, "", nil).Decode(inputFormat(format, path), data)
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}
