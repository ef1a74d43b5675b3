package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xob0t/hobbycard/clients/server"
	"github.com/xob0t/hobbycard/pkg/assets"
	"github.com/xob0t/hobbycard/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the theme editor and HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := assets.NewStore()
		fetcher, err := newFetcher(store)
		if err != nil {
			return err
		}
		return server.RunServe(cmd.Context(), config.ListenAddress(), server.Config{
			Fonts:           fontRegistry(),
			Store:           store,
			Fetcher:         fetcher.DisableFiles(),
			AllowedOrigins:  config.AllowedOrigins(),
			PreviewMaxWidth: config.PreviewMaxWidth(),
			Defaults:        defaultOptions(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	_ = viper.BindPFlag("listen_address", serveCmd.Flags().Lookup("addr"))
}
