package cli

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"stxscan/internal/txcategory"
)

// categoryCommand returns the CLI command group for reading and writing the
// on-chain category of a transaction.
func categoryCommand(d Deps) *cli.Command {
	return &cli.Command{
		Name:        "category",
		Description: "Read or write the on-chain category label of a transaction.",
		Usage:       "category [get|set] [flags]",
		Commands: []*cli.Command{
			getCategoryCommand(d),
			setCategoryCommand(d),
		},
	}
}

// getCategoryCommand returns the CLI command that reads a category label.
//
// Usage example:
//
//	stxscan category get --owner SP2J6... --txid 0xabc...
func getCategoryCommand(d Deps) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "owner",
			Usage:    "Account that owns the category record",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "txid",
			Usage:    "Transaction id, with or without the 0x prefix",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "jq",
			Usage: "jq expression applied to the output",
		},
	}
	flags = append(flags, networkFlags(d)...)

	return &cli.Command{
		Name:        "get",
		Description: "Read the category the owner attached to a transaction.",
		Usage:       "Reads a category. Must provide both owner and txid.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sctx, err := networkContext(c)
			if err != nil {
				return err
			}

			label, found, err := d.Categories.Read(ctx, sctx, c.String("owner"), c.String("txid"))
			if err != nil {
				return err
			}

			doc := map[string]any{"txid": c.String("txid"), "category": nil}
			if found {
				doc["category"] = label
			}
			return printDocument(os.Stdout, doc, c.String("jq"))
		},
	}
}

// setCategoryCommand returns the CLI command that writes a category label
// through the wallet agent. A declined signing prompt is reported as a
// cancelled status, not a command failure.
//
// Usage example:
//
//	stxscan category set --txid 0xabc... --category Income
func setCategoryCommand(d Deps) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "txid",
			Usage:    "Transaction id, with or without the 0x prefix",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "category",
			Usage:    "Category label to attach (suggested: " + strings.Join(txcategory.SuggestedCategories, ", ") + ")",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "jq",
			Usage: "jq expression applied to the output",
		},
	}
	flags = append(flags, networkFlags(d)...)

	return &cli.Command{
		Name:        "set",
		Description: "Write a category label for a transaction via the wallet agent.",
		Usage:       "Writes a category. Must provide both txid and category.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sctx, err := networkContext(c)
			if err != nil {
				return err
			}

			result, err := d.Categories.Write(ctx, sctx, c.String("txid"), c.String("category"))
			if err != nil {
				return err
			}

			doc := map[string]any{"status": string(result.Status)}
			if result.TxID != "" {
				doc["txid"] = result.TxID
			}
			if result.Reason != "" {
				doc["reason"] = result.Reason
			}
			return printDocument(os.Stdout, doc, c.String("jq"))
		},
	}
}
