package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/config"
	"github.com/xob0t/hobbycard/pkg/fonts"
	"github.com/xob0t/hobbycard/pkg/layout"
	"github.com/xob0t/hobbycard/pkg/render"
)

var (
	// Global flags
	cfgFile  string
	fontsDir string
)

var rootCmd = &cobra.Command{
	Use:   "hobbycard",
	Short: "Themed trading cards for painted miniatures",
	Long: `Composites a model photo with a theme's text layout, border,
decorations and game icons into a shareable card image.

Examples:
  hobbycard init                                         # Write a sample subject and config
  hobbycard render -o card.png --subject subject.json    # Render with the default theme
  hobbycard render -o card.jpg --theme killteam --subject subject.json --photo mini.jpg
  hobbycard themes                                       # List built-in themes
  hobbycard serve --addr :8080                           # Start the theme editor`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.Init(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.hobbycard.yaml)")
	rootCmd.PersistentFlags().StringVar(&fontsDir, "fonts-dir", "", "directory theme font files are loaded from")
	_ = viper.BindPFlag("fonts_dir", rootCmd.PersistentFlags().Lookup("fonts-dir"))
}

// fontRegistry returns the shared registry resolving theme fonts from the
// configured directory.
func fontRegistry() *fonts.Registry {
	reg := fonts.Default()
	reg.SetSearchDir(config.FontsDir())
	return reg
}

func newFetcher(store *assets.Store) (*assets.Fetcher, error) {
	return assets.NewFetcher(store, config.FetchTimeout(), config.ImageCacheSize())
}

// defaultOptions are render.DefaultOptions adjusted by the config.
func defaultOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Anchor = layout.ParseAnchor(config.Anchor())
	if v := config.ShadowOpacity(); v > 0 {
		opts.ShadowOpacity = v
	}
	if v := config.OverlayOpacity(); v > 0 {
		opts.OverlayOpacity = v
	}
	return opts
}
