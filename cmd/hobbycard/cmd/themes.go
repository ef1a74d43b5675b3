package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xob0t/hobbycard/pkg/theme"
)

var themesJSON bool

var themesCmd = &cobra.Command{
	Use:   "themes [id]",
	Short: "List built-in themes or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.Flags().BoolVar(&themesJSON, "json", false, "output as JSON")
}

func runThemes(cmd *cobra.Command, args []string) error {
	var infos []theme.Info
	if len(args) == 1 {
		t, err := theme.Lookup(theme.ID(args[0]))
		if err != nil {
			return err
		}
		infos = append(infos, t.Info())
	} else {
		for _, t := range theme.All() {
			infos = append(infos, t.Info())
		}
	}

	if themesJSON || len(args) == 1 {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if len(args) == 1 {
			return enc.Encode(infos[0])
		}
		return enc.Encode(infos)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLAYOUT\tTAGS")
	for _, i := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", i.ID, i.Name, i.Strategy, strings.Join(i.Metadata.Tags, ","))
	}
	return w.Flush()
}
