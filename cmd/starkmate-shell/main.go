// starkmate-shell drives a board over stdin/stdout, one command per line.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/starkmate/starkmate/internal/config"
	"github.com/starkmate/starkmate/internal/logging"
	"github.com/starkmate/starkmate/internal/rules"
	"github.com/starkmate/starkmate/internal/shell"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "starkmate-shell",
	Short: "Drive a StarkMate board with text commands",
	Long: `Reads commands from stdin and prints one reply per command:

  position start|<fen>
  click <sq> | drag <sq> | drop <sq> | dragend
  resize <container> <viewport>
  show | fen | selected | history | outcome | new | undo | quit`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		// The shell keeps no preferences, so unset fields take their defaults.
		cfg := loaded.Effective(nil)

		// Logs go to stderr so replies on stdout stay parseable.
		log, err := logging.New(logging.Options{Level: cfg.Logging.Level, Verbose: verbose})
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		v, err := rules.New(rules.WithPromotion(cfg.Rules.Promotion), rules.WithLogger(log.Named("rules")))
		if err != nil {
			return err
		}

		sh := shell.New(v, cfg.Sizing(), cmd.OutOrStdout(), log.Named("shell"))
		log.Debug("shell ready", zap.String("board", sh.Board().ID()))
		return sh.Run(cmd.InOrStdin())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
