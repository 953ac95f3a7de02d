package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/alexaac/amazon-fire-analysis/internal/cache"
	"github.com/alexaac/amazon-fire-analysis/internal/delivery"
	"github.com/alexaac/amazon-fire-analysis/internal/notification"
	"github.com/alexaac/amazon-fire-analysis/internal/properties"
	"github.com/alexaac/amazon-fire-analysis/internal/raster/gdal"
	"github.com/alexaac/amazon-fire-analysis/internal/ui"
	"github.com/alexaac/amazon-fire-analysis/output"
)

var (
	cfg     *properties.Config
	discord *notification.Discord
)

var rootCmd = &cobra.Command{
	Use:   "firescan",
	Short: "Landsat 8 band compositing and burn ratio tools",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := properties.LoadEnvFile(".env", "../.env"); err != nil {
			return err
		}
		var err error
		if cfg, err = properties.Load(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		discord = notification.NewDiscord(cfg.DiscordSuccessURL, cfg.DiscordErrorURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compositeCmd, nbrCmd, batchCmd, coefficientsCmd)
}

// newProcessor wires the pipelines to GDAL, the console and the configured sinks.
func newProcessor() *delivery.Processor {
	sinks := output.Sinks{output.NewLayerRegistry(cfg.LayerRegistryPath, nil)}
	if cfg.DiscordSuccessURL != "" {
		sinks = append(sinks, discord)
	}

	p := &delivery.Processor{
		Engine:    gdal.NewEngine(cfg.CreationOptions...),
		Sink:      sinks,
		Messages:  ui.NewConsole(),
		Preview:   cfg.PreviewEnabled,
		Footprint: cfg.FootprintEnabled,
	}
	if cfg.CacheDir != "" {
		p.Cache = cache.NewFileCache[delivery.SceneMetadata](cfg.CacheDir)
	}
	return p
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ui.PrintBanner("Fire NBR")
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.PrintError(err.Error())
		if discord != nil {
			if nerr := discord.SendErrorNotification(fmt.Sprintf("firescan %s\n\n%s", os.Args[1:], err)); nerr != nil {
				ui.PrintWarning("Failed to send notification: " + nerr.Error())
			}
		}
		stop()
		os.Exit(1)
	}
}
