package shared

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("analyse", pflag.ContinueOnError)
	flags.StringP("format", "f", "text", "")

	require.NoError(t, flags.Parse([]string{"anim.json"}))
	assert.False(t, HasFlags(flags))

	require.NoError(t, flags.Parse([]string{"-f", "json"}))
	assert.True(t, HasFlags(flags))
}
