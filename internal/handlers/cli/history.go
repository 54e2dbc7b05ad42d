package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"stxscan/internal/pkg/types"
	"stxscan/internal/txfilter"
	"stxscan/internal/txhistory"
)

// civilDateLayout is the format of the --from and --to flags.
const civilDateLayout = "2006-01-02"

// filterFlags describe the view: which transactions survive and in what order.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "status",
			Usage: "Filter by outcome: all, success, or failed",
			Value: string(txfilter.StatusAll),
		},
		&cli.StringFlag{
			Name:  "kind",
			Usage: "Filter by transaction kind (e.g., token_transfer, contract_call), or all",
			Value: txfilter.KindAll,
		},
		&cli.StringFlag{
			Name:  "from",
			Usage: "Keep transactions on or after this date (YYYY-MM-DD)",
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "Keep transactions on or before this date (YYYY-MM-DD)",
		},
		&cli.FloatFlag{
			Name:  "min-amount",
			Usage: "Minimum transfer amount in STX (token transfers only)",
		},
		&cli.FloatFlag{
			Name:  "max-amount",
			Usage: "Maximum transfer amount in STX (token transfers only)",
		},
		&cli.StringFlag{
			Name:  "sort-by",
			Usage: "Sort key: block_time, block_height, or amount",
			Value: string(txfilter.SortByBlockTime),
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "Sort order: asc or desc",
			Value: string(txfilter.SortDesc),
		},
	}
}

// criteriaFromFlags translates the filter flags into engine criteria.
func criteriaFromFlags(c *cli.Command) (txfilter.Criteria, error) {
	criteria := txfilter.DefaultCriteria()
	criteria.Kind = c.String("kind")
	criteria.Status = txfilter.StatusFilter(c.String("status"))
	criteria.SortBy = txfilter.SortBy(c.String("sort-by"))
	criteria.SortOrder = txfilter.SortOrder(c.String("order"))

	if s := c.String("from"); s != "" {
		day, err := time.ParseInLocation(civilDateLayout, s, time.Local)
		if err != nil {
			return txfilter.Criteria{}, fmt.Errorf("parsing --from: %w", err)
		}
		criteria.DateFrom = &day
	}
	if s := c.String("to"); s != "" {
		day, err := time.ParseInLocation(civilDateLayout, s, time.Local)
		if err != nil {
			return txfilter.Criteria{}, fmt.Errorf("parsing --to: %w", err)
		}
		criteria.DateTo = &day
	}

	if c.IsSet("min-amount") {
		v := c.Float("min-amount")
		criteria.MinAmount = &v
	}
	if c.IsSet("max-amount") {
		v := c.Float("max-amount")
		criteria.MaxAmount = &v
	}

	return criteria, nil
}

// loadView accumulates the requested number of pages (or everything) and
// returns the de-duplicated, filtered, sorted view.
func loadView(ctx context.Context, d Deps, c *cli.Command, address string) ([]txhistory.AccountTransaction, error) {
	sctx, err := networkContext(c)
	if err != nil {
		return nil, err
	}

	criteria, err := criteriaFromFlags(c)
	if err != nil {
		return nil, err
	}

	store := txhistory.NewStore(d.Ledger, sctx, address, txhistory.WithPageLimit(d.PageLimit))
	if c.Bool("all") {
		if err := store.LoadAll(ctx); err != nil {
			return nil, err
		}
	} else {
		pages := int(c.Int("pages"))
		for range pages {
			appended, err := store.LoadMore(ctx)
			if err != nil {
				return nil, err
			}
			if appended == 0 {
				break
			}
		}
	}

	return txfilter.Apply(txhistory.Dedupe(store.Snapshot()), criteria), nil
}

// listTransactionsCommand returns the CLI command that lists an account's
// transactions with filtering and sorting.
//
// Usage example:
//
//	stxscan txs --address SP2J6... --status success --sort-by amount --order desc
func listTransactionsCommand(d Deps) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "Account address whose history to list",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "Fetch the account's entire history instead of a fixed number of pages",
		},
		&cli.IntFlag{
			Name:  "pages",
			Usage: "Number of pages to fetch",
			Value: 1,
		},
		&cli.StringFlag{
			Name:  "jq",
			Usage: "jq expression applied to the output rows",
		},
	}
	flags = append(flags, filterFlags()...)
	flags = append(flags, networkFlags(d)...)

	return &cli.Command{
		Name:        "txs",
		Description: "List an account's transactions, newest first by default.",
		Usage:       "Lists transactions for an address with optional filters.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			view, err := loadView(ctx, d, c, c.String("address"))
			if err != nil {
				return err
			}

			return printDocument(os.Stdout, toRows(view), c.String("jq"))
		},
	}
}

// showTransactionCommand returns the CLI command that shows one transaction.
//
// Usage example:
//
//	stxscan tx --address SP2J6... --txid 0xabc...
func showTransactionCommand(d Deps) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "Account address the transaction belongs to",
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
		Name:        "tx",
		Description: "Show a single transaction by id.",
		Usage:       "Shows one transaction. Must provide both address and txid.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sctx, err := networkContext(c)
			if err != nil {
				return err
			}

			txID, err := types.TxIDFromString(c.String("txid"))
			if err != nil {
				return err
			}

			tx, err := d.Ledger.Transaction(ctx, sctx, c.String("address"), txID)
			if err != nil {
				return err
			}

			row := toRow(txhistory.AccountTransaction{Tx: tx})
			return printDocument(os.Stdout, row, c.String("jq"))
		},
	}
}

// showBalanceCommand returns the CLI command that shows an account's STX
// balance.
func showBalanceCommand(d Deps) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "Account address whose balance to show",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "jq",
			Usage: "jq expression applied to the output",
		},
	}
	flags = append(flags, networkFlags(d)...)

	return &cli.Command{
		Name:        "balance",
		Description: "Show an account's STX balance.",
		Usage:       "Shows the STX balance for an address.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sctx, err := networkContext(c)
			if err != nil {
				return err
			}

			balance, err := d.Ledger.AccountBalance(ctx, sctx, c.String("address"))
			if err != nil {
				return err
			}

			doc := map[string]string{
				"balance_stx":        stxString(balance.Balance),
				"total_sent_stx":     stxString(balance.TotalSent),
				"total_received_stx": stxString(balance.TotalReceived),
				"locked_stx":         stxString(balance.Locked),
			}
			return printDocument(os.Stdout, doc, c.String("jq"))
		},
	}
}

// stxString renders a microSTX decimal string as STX with six decimals.
func stxString(microSTX string) string {
	return fmt.Sprintf("%.6f", txhistory.MicroSTXToSTX(microSTX))
}
