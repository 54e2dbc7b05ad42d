package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"stxscan/internal/export"
)

// exportCommand returns the CLI command that renders an account's filtered
// history to a file. The filter and sort flags shape the exported view the
// same way they shape the txs listing.
//
// Usage example:
//
//	stxscan export --address SP2J6... --format csv --out ./reports
func exportCommand(d Deps) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "Account address whose history to export",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: csv, json, or xlsx",
			Value: string(export.FormatCSV),
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Directory the artifact is written into",
			Value: ".",
		},
		&cli.BoolFlag{
			Name:  "include-balance",
			Usage: "Include the account's STX sent/received columns",
		},
		&cli.BoolFlag{
			Name:  "include-events",
			Usage: "Include the STX event count columns",
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "Export the account's entire history instead of a fixed number of pages",
		},
		&cli.IntFlag{
			Name:  "pages",
			Usage: "Number of pages to fetch",
			Value: 1,
		},
	}
	flags = append(flags, filterFlags()...)
	flags = append(flags, networkFlags(d)...)

	return &cli.Command{
		Name:        "export",
		Description: "Render an account's filtered transaction history to a file.",
		Usage:       "Exports transactions for an address in csv, json, or xlsx format.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			address := c.String("address")

			view, err := loadView(ctx, d, c, address)
			if err != nil {
				return err
			}

			artifact, err := export.Render(view, address, export.Options{
				Format:         export.Format(c.String("format")),
				IncludeBalance: c.Bool("include-balance"),
				IncludeEvents:  c.Bool("include-events"),
			})
			if err != nil {
				return err
			}

			path := filepath.Join(c.String("out"), artifact.Filename)
			if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
				return fmt.Errorf("writing artifact: %w", err)
			}

			fmt.Fprintln(os.Stdout, path)
			return nil
		},
	}
}
