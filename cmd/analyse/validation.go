package analyse

import (
	"fmt"
	"os"
	"strings"

	"github.com/scan-io-git/lottiescan/pkg/shared/config"
)

// validateAnalyseArgs validates the arguments provided to the analyse command.
func validateAnalyseArgs(options *RunOptionsAnalyse, args []string) error {
	if len(args) == 0 && options.InputFile == "" {
		return fmt.Errorf("either 'input-file' flag or a source must be specified")
	}

	if len(args) > 0 && options.InputFile != "" {
		return fmt.Errorf("you cannot use an 'input-file' flag and a source at the same time")
	}

	if options.InputFile != "" {
		if _, err := os.Stat(options.InputFile); err != nil {
			return fmt.Errorf("the input file is not accessible: %w", err)
		}
	}

	for _, arg := range args {
		if isRemote(arg) {
			continue
		}
		if _, err := os.Stat(arg); os.IsNotExist(err) {
			return fmt.Errorf("the source path does not exist: %v", arg)
		}
	}

	if err := config.ValidateFormat(options.ReportFormat); err != nil {
		return err
	}

	if options.Threads <= 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}

	if options.TemplatesPath != "" && options.ReportFormat != "html" {
		return fmt.Errorf("the 'templates-path' flag is only supported with the html format")
	}

	return nil
}

// isRemote reports whether source is fetched over the network.
func isRemote(source string) bool {
	lower := strings.ToLower(source)
	for _, prefix := range []string{"http://", "https://", "s3://"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
