package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List every record of a category",
	Long:  "Fetch every record of a category from SWAPI and display them in a table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		category := parseCategory(args[0])
		cfg, log := setup()
		defer log.Sync()

		resp, err := client(cfg).Dispatch(swapi.ResolveListOperation(category)).Execute(context.Background())
		if err != nil {
			cobra.CheckErr(fmt.Errorf("list failed: %w", err))
		}

		if len(resp.Items) == 0 {
			fmt.Printf("No %s found.\n", category.Label())
			return
		}

		columns := []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Name", Width: 40},
			{Title: "Details", Width: 30},
		}

		rows := []table.Row{}
		for _, item := range resp.Items {
			rows = append(rows, table.Row{
				item.ID,
				truncateString(item.Name, 38),
				truncateString(item.Subtitle, 28),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n%s (%d)\n\n", category.Label(), len(resp.Items))
		fmt.Println(t.View())
	},
}
