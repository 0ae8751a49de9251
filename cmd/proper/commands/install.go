package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/proper/internal/app"
	"go.trai.ch/proper/internal/tui"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [packages...]",
		Short: "Install declared dependencies, or add and install the given packages",
		Long: "Resolves every dependency declared in elm-package.json to an exact tag, " +
			"materializes it under elm-stuff/packages and rewrites elm-package.json and " +
			"elm-stuff/exact-dependencies.json. Packages are given as owner/repo or as a URL.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.install(cmd, args)
		},
	}
}

func (c *CLI) install(cmd *cobra.Command, packages []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	progress, _ := cmd.Flags().GetBool("progress")

	if !progress || c.progress == nil {
		return c.app.Install(cmd.Context(), packages, app.InstallOptions{Verbose: verbose})
	}

	wait := tui.Start(c.progress, cmd.OutOrStdout())
	err := c.app.Install(cmd.Context(), packages, app.InstallOptions{Verbose: verbose})
	_ = c.progress.Close()
	if renderErr := wait(); renderErr != nil && err == nil {
		return renderErr
	}
	return err
}
