package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kerbaras/starwarspedia/pkg/app"
	"github.com/kerbaras/starwarspedia/pkg/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export [category]",
	Short: "Export a category as an EPUB",
	Long:  "Fetch every record of a category and write them to an EPUB book, one section per record",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		category := parseCategory(args[0])
		cfg, log := setup()
		defer log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		newExporter := app.NewExporterFactory(client(cfg), cfg.Export, logging.NewErrorObserver(log))
		exporter := newExporter()
		defer exporter.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for progress := range exporter.GetProgressChannel() {
				switch progress.Status {
				case "listing":
					fmt.Printf("Listing %s...\n", category.Label())
				case "fetching":
					fmt.Printf("  %d/%d %s\n", progress.Current, progress.Total, progress.Item)
				case "error":
					if progress.Item != "" {
						fmt.Printf("  skipped %s: %v\n", progress.Item, progress.Error)
					}
				}
			}
		}()

		path, err := exporter.Export(ctx, category)
		exporter.Close()
		<-done
		if err != nil {
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}

		fmt.Printf("EPUB created: %s\n", path)
	},
}

func init() {
	exportCmd.Flags().StringP("dir", "d", "", "output directory (default $HOME/Downloads)")
	exportCmd.Flags().IntP("concurrency", "c", 0, "records fetched in parallel")
	_ = viper.BindPFlag("export.dir", exportCmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("export.concurrency", exportCmd.Flags().Lookup("concurrency"))
}
