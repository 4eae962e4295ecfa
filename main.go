package main

import (
	"os"

	"github.com/scan-io-git/lottiescan/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
