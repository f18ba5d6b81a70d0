package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

var showCmd = &cobra.Command{
	Use:   "show [category] [id]",
	Short: "Show every field of one record",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		category := parseCategory(args[0])
		id := args[1]
		cfg, log := setup()
		defer log.Sync()

		resp, err := client(cfg).Dispatch(swapi.ResolveItemOperation(category, id)).Execute(context.Background())
		if errors.Is(err, swapi.ErrNotFound) || (err == nil && resp.Detail == nil) {
			fmt.Printf("No %s with id %s.\n", category.Label(), id)
			return
		}
		if err != nil {
			cobra.CheckErr(fmt.Errorf("show failed: %w", err))
		}

		var (
			titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE81F")).Bold(true).MarginBottom(1)
			labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4BD5EE")).Bold(true)
		)

		width := 0
		for _, f := range resp.Detail.Fields {
			width = max(width, lipgloss.Width(f.Label))
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("%s (%s #%s)", resp.Detail.Name, category.Label(), id)))
		for _, f := range resp.Detail.Fields {
			label := labelStyle.Width(width + 2).Render(f.Label + ":")
			fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, label, f.Value))
		}
	},
}
