package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// cfgFile allows specifying a custom config file.
	cfgFile string
	// debug enables debug logging and a metadata dump.
	debug bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "manifest-generator",
	})

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "manifest-generator",
		Short: "Generate a plugin manifest from its source contract",
		Long: `manifest-generator locates the plugin entrypoint call in a source tree,
statically resolves its generic type contract, loads the referenced
schema values through a JavaScript runtime, and writes the manifest.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "manifest-generator.yaml", "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	cobra.OnInitialize(func() {
		if debug {
			logger.SetLevel(log.DebugLevel)
		}
	})

	rootCmd.AddCommand(generateCmd)
}
