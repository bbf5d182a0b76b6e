package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tt "github.com/gnolang/cslint/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-lint stylesheets whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		engine, err := newEngine(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}
		applyIgnores(engine, ignoreRules, ignorePaths)

		out := cmd.OutOrStdout()
		report := func(filename string, issues []tt.Issue) {
			if len(issues) == 0 {
				logger.Info("No issues", zap.String("file", filename))
				return
			}
			printFileIssues(logger, out, filename, issues)
		}

		if err := engine.Watch(ctx, logger, args, report); err != nil {
			logger.Fatal("Watch failed", zap.Error(err))
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	watchCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
}
