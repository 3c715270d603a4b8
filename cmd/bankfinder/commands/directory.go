package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bankfinder/internal/app"
	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

func banksCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banks [query]",
		Short: "List banks, optionally filtered by name or code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, opts, true, func(ctx context.Context, core *app.Core) error {
				banks := domain.FilterBanks(core.Directory.Banks(), strings.Join(args, " "))
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), banks)
				}

				rows := make([][]string, 0, len(banks))
				for _, b := range banks {
					fav := ""
					if core.Favorites.IsFavorite(domain.FavoriteBank, b.ID) {
						fav = "★"
					}
					rows = append(rows, []string{b.ID, orNA(b.Code), b.Name, fav})
				}
				if err := table(cmd.OutOrStdout(), []string{"id", "code", "name", "fav"}, rows); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d bank(s)\n", len(banks))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}

func branchesCmd(opts *options) *cobra.Command {
	var filter domain.BranchFilter

	cmd := &cobra.Command{
		Use:   "branches [query]",
		Short: "List branches filtered by text, state and bank code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Query = strings.Join(args, " ")
			return withCore(cmd, opts, true, func(ctx context.Context, core *app.Core) error {
				branches := domain.FilterBranches(core.Directory.Branches(), filter)
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), branches)
				}

				rows := make([][]string, 0, len(branches))
				for _, b := range branches {
					rows = append(rows, []string{b.ID, b.BankName, b.BranchName, b.State, orNA(b.BranchCode)})
				}
				if err := table(cmd.OutOrStdout(), []string{"id", "bank", "branch", "state", "code"}, rows); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d branch(es)\n", len(branches))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&filter.State, "state", "", "exact state name, e.g. Lagos")
	cmd.Flags().StringVar(&filter.BankCode, "bank", "", "bank code, e.g. 044")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}
