package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgPath string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "paibot",
	Short: "PAIBot - conversational sustainable investing assessment",
	Long: `PAIBot profiles an investor through a short conversation (risk tolerance,
time horizon, goals, behavioral biases, ESG and SDG priorities) and recommends
the best matching sustainable investment tracks.

Run "paibot serve" to start the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = newLogger(level, false)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultCfg, "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	tracksCmd.Flags().StringVar(&langFlag, "lang", "en", "output language (en, zh)")
	tracksCmd.Flags().StringVar(&catalogFlag, "catalog", "", "YAML track catalog (built-in when empty)")
	recommendCmd.Flags().StringVar(&langFlag, "lang", "en", "output language (en, zh)")
	recommendCmd.Flags().StringVar(&catalogFlag, "catalog", "", "YAML track catalog (built-in when empty)")
	recommendCmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "JSON profile file")
	_ = recommendCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(serveCmd, tracksCmd, recommendCmd)
}

// newLogger builds a JSON production logger, or a console logger in development.
func newLogger(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = lvl
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
