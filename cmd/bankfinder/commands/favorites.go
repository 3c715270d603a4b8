package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bankfinder/internal/app"
	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

func favoritesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List and edit saved banks and branches",
	}
	cmd.AddCommand(favoritesListCmd(opts), favoritesAddCmd(opts), favoritesRemoveCmd(opts))
	return cmd
}

func favoritesListCmd(opts *options) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites, newest last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ft domain.FavoriteType
			if typ != "" {
				parsed, err := domain.ParseFavoriteType(typ)
				if err != nil {
					return err
				}
				ft = parsed
			}

			return withCore(cmd, opts, false, func(ctx context.Context, core *app.Core) error {
				items := core.Favorites.ByType(ft)
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), items)
				}

				rows := make([][]string, 0, len(items))
				for _, it := range items {
					rows = append(rows, []string{string(it.Type), it.ID, favoriteLabel(it), time.UnixMilli(it.Timestamp).Format(time.DateTime)})
				}
				return table(cmd.OutOrStdout(), []string{"type", "id", "name", "added"}, rows)
			})
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "bank or branch")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON")
	return cmd
}

func favoriteLabel(it domain.FavoriteItem) string {
	switch {
	case it.Bank != nil:
		return it.Bank.Name
	case it.Branch != nil:
		return it.Branch.BranchName + " (" + it.Branch.BankName + ")"
	default:
		return ""
	}
}

func favoritesAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <bank|branch> <id>",
		Short: "Save a bank or branch from the directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := domain.ParseFavoriteType(args[0])
			if err != nil {
				return err
			}
			id := args[1]

			return withCore(cmd, opts, true, func(ctx context.Context, core *app.Core) error {
				var item domain.FavoriteItem
				switch typ {
				case domain.FavoriteBank:
					bank, ok := core.Directory.Bank(id)
					if !ok {
						return fmt.Errorf("bank %q not found", id)
					}
					item = domain.NewBankFavorite(bank, time.Now())
				case domain.FavoriteBranch:
					branch, ok := core.Directory.Branch(id)
					if !ok {
						return fmt.Errorf("branch %q not found", id)
					}
					item = domain.NewBranchFavorite(branch, time.Now())
				}

				if err := core.Favorites.Add(ctx, item); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s saved (%d favorites)\n", typ, id, core.Favorites.Counts().Total)
				return err
			})
		},
	}
}

func favoritesRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <bank|branch> <id>",
		Aliases: []string{"rm"},
		Short:   "Forget a saved bank or branch",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := domain.ParseFavoriteType(args[0])
			if err != nil {
				return err
			}

			return withCore(cmd, opts, false, func(ctx context.Context, core *app.Core) error {
				if !core.Favorites.IsFavorite(typ, args[1]) {
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s is not a favorite\n", typ, args[1])
					return err
				}
				core.Favorites.Remove(ctx, typ, args[1])
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s removed\n", typ, args[1])
				return err
			})
		},
	}
}
