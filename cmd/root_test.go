package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/lottiescan/internal/gate"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, exitCode(nil))
	assert.Equal(t, ExitError, exitCode(errors.New("boom")))
	assert.Equal(t, ExitGateFailed, exitCode(fmt.Errorf("%w: 1 of 2 animations", gate.ErrFailed)))
}

func TestRootCommandTree(t *testing.T) {
	for _, name := range []string{"analyse", "rules", "extract", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		assert.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
