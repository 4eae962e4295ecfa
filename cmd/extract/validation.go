package extract

import (
	"fmt"
	"os"
	"strings"
)

// validateExtractArgs validates the arguments provided to the extract command.
func validateExtractArgs(options *RunOptionsExtract, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return fmt.Errorf("exactly one source must be specified")
	}

	source := strings.ToLower(args[0])
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") || strings.HasPrefix(source, "s3://") {
		return nil
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("the source is not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("the source %q is a directory", args[0])
	}
	return nil
}
