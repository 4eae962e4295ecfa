package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/lottiescan/cmd/analyse"
	"github.com/scan-io-git/lottiescan/cmd/extract"
	"github.com/scan-io-git/lottiescan/cmd/rules"
	"github.com/scan-io-git/lottiescan/cmd/version"
	"github.com/scan-io-git/lottiescan/internal/gate"
	"github.com/scan-io-git/lottiescan/pkg/shared/config"
)

// Exit codes returned by Execute.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitGateFailed = 2
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "lottiescan [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Lottiescan checks Lottie animations for runtime compatibility issues.",
		Long: `Lottiescan statically analyses Lottie animation documents (.json and .lottie) and reports
features that render incorrectly or not at all on common runtimes: web canvas, Flutter and native mobile players.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("Path to the configuration file (default is $%s or ./%s).", config.ConfigEnv, config.DefaultConfigFile))
	rootCmd.AddCommand(
		analyse.AnalyseCmd,
		rules.RulesCmd,
		extract.ExtractCmd,
		version.NewVersionCmd(),
	)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return exitCode(rootCmd.Execute())
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, gate.ErrFailed):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGateFailed
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		return err
	}

	analyse.Init(AppConfig)
	rules.Init(AppConfig)
	extract.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
