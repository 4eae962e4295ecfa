package rules

import (
	"github.com/spf13/cobra"

	"github.com/scan-io-git/lottiescan/internal/compat"
	"github.com/scan-io-git/lottiescan/pkg/shared/config"
	"github.com/scan-io-git/lottiescan/pkg/shared/logger"
)

// RunOptionsRules holds the arguments for the rules command.
type RunOptionsRules struct {
	OutputFormat string
	Severity     string
	NoColor      bool
}

var (
	AppConfig         *config.Config
	rulesOptions      RunOptionsRules
	exampleRulesUsage = `  # Listing every rule as a table
  lottiescan rules

  # Listing critical rules as JSON
  lottiescan rules --severity critical --output-format json`
)

// RulesCmd represents the rules command.
var RulesCmd = &cobra.Command{
	Use:                   "rules [--output-format/-f text|json|yaml] [--severity critical|warning]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleRulesUsage,
	Short:                 "Lists the compatibility rules the analyser checks",
	Args:                  cobra.NoArgs,
	RunE:                  runRulesCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runRulesCommand(cmd *cobra.Command, args []string) error {
	logger := logger.NewLogger(AppConfig, "core-rules")

	if err := validateRulesArgs(&rulesOptions); err != nil {
		logger.Error("invalid rules arguments", "error", err)
		return err
	}

	rules := filterRules(compat.DefaultCatalog().Rules(), rulesOptions.Severity)
	logger.Debug("listing rules", "count", len(rules))
	return printRules(cmd.OutOrStdout(), rules, &rulesOptions)
}

func init() {
	RulesCmd.Flags().StringVarP(&rulesOptions.OutputFormat, "output-format", "f", "text", "Output format: text, json or yaml.")
	RulesCmd.Flags().StringVar(&rulesOptions.Severity, "severity", "", "Only list rules of this severity.")
	RulesCmd.Flags().BoolVar(&rulesOptions.NoColor, "no-color", false, "Disable colored text output.")
	RulesCmd.Flags().BoolP("help", "h", false, "Show help for the rules command.")
}
