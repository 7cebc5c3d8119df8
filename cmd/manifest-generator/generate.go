package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"manifest-generator/internal/common"
	"manifest-generator/internal/config"
	"manifest-generator/internal/extract"
	"manifest-generator/internal/loader"
	"manifest-generator/internal/manifest"
)

var (
	flagRoot     string
	flagManifest string
	flagPackage  string
	flagExclude  string
	flagSkipBots string
	flagRepo     string

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Extract the plugin contract and write the manifest",
		RunE:  runGenerate,
	}
)

func init() {
	generateCmd.Flags().StringVar(&flagRoot, "root", ".", "source tree to scan")
	generateCmd.Flags().StringVar(&flagManifest, "manifest", "manifest.json", "manifest output path")
	generateCmd.Flags().StringVar(&flagPackage, "package", "package.json", "package metadata path")
	generateCmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated events to exclude")
	generateCmd.Flags().StringVar(&flagSkipBots, "skip-bot-events", "", "skip events from automated accounts (true/false)")
	generateCmd.Flags().StringVar(&flagRepo, "repo", "", "repository identity, used as a name fallback")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return err
	}

	mergeFlags(cmd, cfg)

	excluded := common.Dedupe(append(cfg.ExcludedEvents, extract.ParseExcluded(flagExclude)...))

	logger.Info("extracting plugin contract", "root", cfg.Root)

	meta, err := extract.Extract(extract.Options{
		Root:           cfg.Root,
		ExcludedEvents: excluded,
	}, loader.New())
	if err != nil {
		return err
	}

	logger.Info("entrypoint resolved",
		"file", meta.Entrypoint.FilePath,
		"function", meta.Entrypoint.FunctionName,
		"events", len(meta.SupportedEvents))

	if debug {
		logger.Debug("extraction metadata\n" + spew.Sdump(meta))
	}

	existing, err := manifest.ReadExisting(cfg.Manifest)
	if err != nil {
		return err
	}

	pkg, err := manifest.ReadPackageMeta(cfg.Package)
	if err != nil {
		return err
	}

	obj, diags := manifest.Assemble(manifest.AssembleInput{
		Existing:      existing,
		Metadata:      meta,
		Package:       pkg,
		Repo:          flagRepo,
		SkipBotEvents: skipBotEventsValue(cmd, cfg),
	})

	for _, w := range diags.Warnings {
		logger.Warn(w.String())
	}

	if err := manifest.Write(cfg.Manifest, obj); err != nil {
		return err
	}

	logger.Info("manifest written", "path", cfg.Manifest)

	return nil
}

// mergeFlags overlays changed command-line flags onto the file config.
func mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("root") {
		cfg.Root = flagRoot
	}

	if cmd.Flags().Changed("manifest") {
		cfg.Manifest = flagManifest
	}

	if cmd.Flags().Changed("package") {
		cfg.Package = flagPackage
	}
}

// skipBotEventsValue picks the raw flag value: the command line wins, then
// the config file, then unset.
func skipBotEventsValue(cmd *cobra.Command, cfg *config.Config) any {
	if cmd.Flags().Changed("skip-bot-events") {
		return flagSkipBots
	}

	if cfg.SkipBotEvents != nil {
		return *cfg.SkipBotEvents
	}

	return nil
}
