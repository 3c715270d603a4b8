package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bankfinder/internal/app"
)

func themeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the saved theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, opts, false, func(ctx context.Context, core *app.Core) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), core.Preference.Mode())
				return err
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, opts, false, func(ctx context.Context, core *app.Core) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), core.Preference.Toggle(ctx))
				return err
			})
		},
	})
	return cmd
}
