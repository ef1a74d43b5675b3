package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const sampleSubject = `{
  "name": "Captain Aurelius",
  "image_url": "mini.jpg",
  "painted_date": "2024-05-01",
  "box": {
    "name": "Ultramarines Strike Force",
    "game": {"name": "Warhammer 40,000"}
  }
}
`

const sampleConfig = `# hobbycard settings; every key can also be set as HOBBYCARD_<KEY>.
listen_address: ":8080"
fonts_dir: ""
shadow_opacity: 0.8
overlay_opacity: 1.0
anchor: bottom-right
preview_max_width: 400
image_cache_size: 64
fetch_timeout: 10s
allowed_origins:
  - "*"
`

var (
	initSubject string
	initConfig  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample subject and config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, f := range []struct{ path, body string }{
			{initSubject, sampleSubject},
			{initConfig, sampleConfig},
		} {
			if _, err := os.Stat(f.path); err == nil {
				return fmt.Errorf("%s already exists", f.path)
			}
			if err := os.WriteFile(f.path, []byte(f.body), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", f.path, err)
			}
		}
		fmt.Printf("Created: %s, %s\n", initSubject, initConfig)
		fmt.Printf("Run: hobbycard --config %s render -o card.png --subject %s --photo <your photo>\n", initConfig, initSubject)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initSubject, "subject", "subject.json", "output path for the sample subject")
	initCmd.Flags().StringVar(&initConfig, "config-out", "hobbycard.yaml", "output path for the sample config")
}
