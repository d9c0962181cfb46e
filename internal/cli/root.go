// Package cli assembles eureka's command line interface.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eurekahq/eureka/internal/app"
	"github.com/eurekahq/eureka/internal/git"
	"github.com/eurekahq/eureka/internal/input"
	"github.com/eurekahq/eureka/internal/output"
	"github.com/eurekahq/eureka/internal/program"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version string) *cobra.Command {
	var (
		clearConfig bool
		view        bool
		branch      string
		debug       bool
	)

	rootCmd := &cobra.Command{
		Use:   "eureka",
		Short: "Input and store your ideas without leaving the terminal",
		Long: `eureka captures a short idea, commits it to your idea repository and
pushes it to the origin remote, so no idea is ever lost to a closed
terminal.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			application := &app.App{
				NewGit: func(sshKeyPath string) git.Management {
					return git.New(sshKeyPath, logger)
				},
				Prompter: input.SurveyPrompter{},
				Printer:  output.NewPrinter(cmd.OutOrStdout()),
				Program:  program.Access{},
				Logger:   logger,
			}

			return application.Run(app.Options{
				ClearConfig: clearConfig,
				View:        view,
				Branch:      branch,
			})
		},
	}

	rootCmd.Flags().BoolVarP(&clearConfig, "clear-config", "c", false, "Clear your stored configuration")
	rootCmd.Flags().BoolVarP(&view, "view", "v", false, "View your ideas with $PAGER (fallback: less)")
	rootCmd.Flags().StringVarP(&branch, "branch", "b", "main", "Branch ideas are committed and pushed to")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return rootCmd
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
