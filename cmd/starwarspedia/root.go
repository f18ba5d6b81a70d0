package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kerbaras/starwarspedia/pkg/app"
	"github.com/kerbaras/starwarspedia/pkg/config"
	"github.com/kerbaras/starwarspedia/pkg/logging"
	"github.com/kerbaras/starwarspedia/pkg/swapi"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "starwarspedia",
	Short: "Browse the Star Wars API from your terminal",
	Long:  "Browse films, people, planets, species, starships and vehicles from SWAPI in a TUI, or query them from the command line",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log := setup()
		defer log.Sync()

		// Launch TUI by default
		a := app.NewApp(cfg, log)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.starwarspedia.yaml or $HOME/.starwarspedia.yaml)")
	rootCmd.PersistentFlags().StringP("transport", "t", config.TransportREST, "SWAPI transport: rest or graphql")
	rootCmd.PersistentFlags().Bool("offline", false, "pretend the network is unavailable")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("api.transport", rootCmd.PersistentFlags().Lookup("transport"))
	_ = viper.BindPFlag("ui.offline", rootCmd.PersistentFlags().Lookup("offline"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(stateCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".starwarspedia")
		viper.SetConfigType("yaml")
	}
	config.Bind()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			cobra.CheckErr(fmt.Errorf("failed to read config: %w", err))
		}
	}
}

// setup loads the configuration and the file logger shared by every command.
func setup() (config.Config, *zap.Logger) {
	cfg, err := config.Load()
	cobra.CheckErr(err)

	log, err := logging.New(cfg.Log)
	cobra.CheckErr(err)
	return cfg, log
}

func client(cfg config.Config) *swapi.Client {
	c, err := app.BuildClient(cfg.API)
	cobra.CheckErr(err)
	return c
}

func parseCategory(arg string) swapi.Category {
	c, err := swapi.ParseCategory(arg)
	if err != nil {
		cobra.CheckErr(fmt.Errorf("%w (try 'starwarspedia categories')", err))
	}
	return c
}

func truncateString(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
