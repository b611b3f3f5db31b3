package main

import (
	"os"

	"github.com/ZocoLini/mk-template/pkg/ui"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		ui.NewPrinter(os.Stderr, ui.DetectFormat(os.Stderr, noColor) == ui.FormatTerminal).Error(err)
		os.Exit(1)
	}
}
