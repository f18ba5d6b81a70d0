package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kerbaras/starwarspedia/pkg/data"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect the saved screen state",
	Long:  "The TUI saves the loaded data and scroll position of its screens on exit and restores them on the next start",
}

var stateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved screen snapshots",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log := setup()
		defer log.Sync()

		repo, err := data.NewDuckDBRepository(cfg.State.Path)
		cobra.CheckErr(err)
		defer repo.Close()

		snapshots, err := repo.ListSnapshots()
		cobra.CheckErr(err)

		if len(snapshots) == 0 {
			fmt.Println("No saved state.")
			return
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
			Headers("Screen", "Kind", "Records", "Scroll", "Saved")

		for _, s := range snapshots {
			records := "1"
			if s.Kind == data.SnapshotCategory {
				records = fmt.Sprintf("%d", s.Items.Len())
			}
			t.Row(s.Host, string(s.Kind), records, fmt.Sprintf("%d", s.Scroll), s.SavedAt.Local().Format("2006-01-02 15:04"))
		}

		fmt.Println(t)
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved snapshot",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log := setup()
		defer log.Sync()

		repo, err := data.NewDuckDBRepository(cfg.State.Path)
		cobra.CheckErr(err)
		defer repo.Close()

		n, err := repo.ClearSnapshots()
		cobra.CheckErr(err)
		fmt.Printf("Removed %d snapshot(s).\n", n)
	},
}

func init() {
	stateCmd.AddCommand(stateListCmd)
	stateCmd.AddCommand(stateClearCmd)
}
