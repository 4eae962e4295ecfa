package extract

import (
	"github.com/spf13/cobra"

	"github.com/scan-io-git/lottiescan/pkg/shared/config"
	"github.com/scan-io-git/lottiescan/pkg/shared/logger"
)

// RunOptionsExtract holds the arguments for the extract command.
type RunOptionsExtract struct {
	OutputPath string
}

var (
	AppConfig           *config.Config
	extractOptions      RunOptionsExtract
	exampleExtractUsage = `  # Writing the primary animation of a dotLottie file to stdout
  lottiescan extract /path/to/bundle.lottie

  # Writing it with images inlined to a file
  lottiescan extract /path/to/bundle.lottie --output /path/to/animation.json

  # Writing it into a folder, named after the animation
  lottiescan extract https://cdn.example.com/intro.lottie --output /path/to/extracted`
)

// ExtractCmd represents the extract command.
var ExtractCmd = &cobra.Command{
	Use:                   "extract [--output/-o PATH] SOURCE",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleExtractUsage,
	Short:                 "Writes an animation as a single self-contained Lottie JSON document",
	Long: `Writes an animation as a single self-contained Lottie JSON document.

For dotLottie containers the primary animation is selected and image assets stored in
the archive are embedded as data URIs.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtractCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runExtractCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-extract")

	if err := validateExtractArgs(&extractOptions, args); err != nil {
		logger.Error("invalid extract arguments", "error", err)
		return err
	}

	anim, err := loadAnimation(cmd.Context(), AppConfig, args[0], logger)
	if err != nil {
		logger.Error("failed to load animation", "source", args[0], "error", err)
		return err
	}

	path, err := writeAnimation(cmd.OutOrStdout(), anim, extractOptions.OutputPath)
	if err != nil {
		logger.Error("failed to write animation", "error", err)
		return err
	}
	if path != "" {
		logger.Info("animation extracted", "path", path, "inlined_images", anim.InlinedImages)
	}
	return nil
}

func init() {
	ExtractCmd.Flags().StringVarP(&extractOptions.OutputPath, "output", "o", "", "Path to the output file or directory. Defaults to stdout.")
	ExtractCmd.Flags().BoolP("help", "h", false, "Show help for the extract command.")
}
