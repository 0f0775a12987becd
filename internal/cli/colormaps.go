package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hed-standard/hedviz/pkg/colormap"
)

// colormapsCommand creates the colormaps command listing palette names.
func (c *CLI) colormapsCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "colormaps",
		Short: "List the registered colormap names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range colormap.Names() {
				if plain {
					fmt.Println(name)
					continue
				}
				fmt.Printf("%-16s %s\n", name, swatch(name))
			}
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "names only, no color swatches")

	return cmd
}

// swatch renders a terminal preview strip of the colormap.
func swatch(name string) string {
	cm, err := colormap.Lookup(name)
	if err != nil {
		return ""
	}

	const steps = 24
	var b strings.Builder
	for i := range steps {
		t := float64(i) / float64(steps-1)
		hex := cm.Sample(t).Hex()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("█"))
	}
	return b.String()
}
