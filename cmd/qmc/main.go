// Command qmc evaluates the ground-state energy of a built-in molecular
// system by Markov-chain Monte Carlo sampling of the reference
// hydrogen-like wave function.
//
// Runs are driven by flags or a config file (TOML/YAML via viper):
//
//	qmc run --system H2 --walkers 500 --steps 400
//	qmc run --config run.toml
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile  string
		logLevel string
	)
	root := &cobra.Command{
		Use:           "qmc",
		Short:         "Variational Monte Carlo energy evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()
		cmd.SetContext(withLogger(cmd.Context(), log))

		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
			log.Info().Str("file", viper.ConfigFileUsed()).Msg("config loaded")
		}
		return nil
	}

	root.AddCommand(newRunCmd())
	return root
}
