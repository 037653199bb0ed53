package main

import (
	"fmt"
	"os"
)

const (
	appName = "Hypernate"
	appSlug = "hypernate"
	appID   = "io.hypernate.app"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
