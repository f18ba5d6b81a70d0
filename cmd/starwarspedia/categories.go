package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the SWAPI categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			yellow = lipgloss.Color("#FFE81F")

			headerStyle = lipgloss.NewStyle().Foreground(yellow).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(yellow)).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			Headers("#", "Key", "Label", "Fields")

		for i, c := range swapi.Categories {
			labels := make([]string, 0, len(c.Fields()))
			for _, f := range c.Fields() {
				labels = append(labels, f.Label)
			}
			t.Row(fmt.Sprintf("%d", i+1), c.Key(), c.Label(), truncateString(strings.Join(labels, ", "), 60))
		}

		fmt.Println(t)
	},
}
