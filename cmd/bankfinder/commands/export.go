package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/bankfinder/internal/app"
	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/export"
)

func exportCmd(opts *options) *cobra.Command {
	var (
		format string
		out    string
		query  string
		state  string
		share  bool
	)

	cmd := &cobra.Command{
		Use:   "export <bankID>",
		Short: "Export the branches of a bank as csv, text or xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			return withCore(cmd, opts, true, func(ctx context.Context, core *app.Core) error {
				bank, ok := core.Directory.Bank(args[0])
				if !ok {
					return fmt.Errorf("bank %q not found", args[0])
				}
				branches := domain.FilterBranches(core.Directory.BranchesForBank(bank.Code),
					domain.BranchFilter{Query: query, State: state})

				if share {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), export.MailtoURL(bank.Name, export.Text(bank.Name, branches, time.Now())))
					return err
				}

				var w io.Writer = cmd.OutOrStdout()
				if out != "" {
					if out == "." {
						out = f.Filename(bank)
					}
					file, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("create %s: %w", out, err)
					}
					defer file.Close()
					w = file
				} else if f == export.FormatXLSX {
					return fmt.Errorf("xlsx is binary, pass --out")
				}

				if err := export.Write(w, f, bank, branches, time.Now()); err != nil {
					return fmt.Errorf("export %s: %w", bank.Name, err)
				}
				if out != "" {
					_, err := fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d branch(es) to %s\n", len(branches), out)
					return err
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv, text or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file, "." for the default file name (default stdout)`)
	cmd.Flags().StringVarP(&query, "query", "q", "", "only branches matching this text")
	cmd.Flags().StringVar(&state, "state", "", "only branches in this state")
	cmd.Flags().BoolVar(&share, "share", false, "print a mailto link carrying the text export instead")
	return cmd
}
