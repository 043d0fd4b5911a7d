package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/Ritenoob/miniature-enigma/pkg/cmd/cmdutil"
	"github.com/Ritenoob/miniature-enigma/pkg/config"
	"github.com/Ritenoob/miniature-enigma/pkg/types"
)

var RootCmd = &cobra.Command{
	Use:   "indicator",
	Short: "incremental MACD and RSI engine",
	Long:  "feed closed klines of one symbol and interval through the MACD and Wilder RSI engines",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("debug") {
			log.StandardLogger().SetLevel(log.DebugLevel)
		}

		dotenvFile := viper.GetString("dotenv")
		if dotenvFile == "" {
			return nil
		}

		if _, err := os.Stat(dotenvFile); err == nil {
			if err := godotenv.Load(dotenvFile); err != nil {
				return errors.Wrapf(err, "error loading dotenv file %s", dotenvFile)
			}
		}
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "", "config file")
	RootCmd.PersistentFlags().String("dotenv", ".env.local", "the dotenv file you want to load")
	RootCmd.PersistentFlags().Bool("no-color", false, "disable the colored output")

	cmdutil.PersistentFlags(RootCmd.PersistentFlags())
}

// loadConfig loads the config file given by --config, or the default config,
// and applies the --symbol and --interval overrides.
func loadConfig() (*config.Config, error) {
	conf := config.Default()
	if configFile := viper.GetString("config"); configFile != "" {
		var err error
		conf, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	}

	if symbol := viper.GetString("symbol"); symbol != "" {
		conf.Symbol = symbol
	}

	if s := viper.GetString("interval"); s != "" {
		interval, err := types.ValidInterval(s)
		if err != nil {
			return nil, err
		}
		conf.Interval = interval
	}

	return conf, nil
}

func Execute() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, the env vars are not overloaded yet.
	viper.AutomaticEnv()

	// Once the flags are defined, we can bind config keys with flags.
	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	if err := viper.BindPFlags(RootCmd.Flags()); err != nil {
		log.WithError(err).Errorf("failed to bind local flags. please check the flag settings.")
	}

	log.SetFormatter(&prefixed.TextFormatter{})

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
