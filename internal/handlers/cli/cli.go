// Package cli wires the account history, category, export, and follow
// services into the stxscan command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"stxscan/internal/accountwatch"
	"stxscan/internal/pkg/types"
	"stxscan/internal/stacks"
	"stxscan/internal/txcategory"
	"stxscan/internal/txhistory"
)

// Ledger is the transaction and balance lookup surface the commands consume.
type Ledger interface {
	AccountTransactions(ctx context.Context, sctx stacks.Context, address string, offset, limit int) (txhistory.Page, error)
	Transaction(ctx context.Context, sctx stacks.Context, account string, txID types.TxID) (txhistory.Transaction, error)
	AccountBalance(ctx context.Context, sctx stacks.Context, address string) (txhistory.Balance, error)
}

// Categories is the category read/write surface the commands consume.
type Categories interface {
	Read(ctx context.Context, sctx stacks.Context, owner string, txID string) (string, bool, error)
	Write(ctx context.Context, sctx stacks.Context, txID string, category string) (txcategory.WriteResult, error)
}

// Follower streams an account's new transactions.
type Follower interface {
	Follow(ctx context.Context, sctx stacks.Context, address string) (<-chan accountwatch.TransactionEvent, error)
}

// Deps carries the services and configured defaults the commands run against.
type Deps struct {
	Ledger     Ledger
	Categories Categories
	Follower   Follower

	DefaultNetwork    string
	DefaultAPIBaseURL string
	CategoryContract  string
	PageLimit         int
}

// Run initializes and executes the stxscan CLI application.
//
// It registers all available commands:
//
//   - `txs`: Lists an account's transactions with filtering and sorting.
//   - `tx`: Shows a single transaction by id.
//   - `balance`: Shows an account's STX balance.
//   - `category`: Reads or writes the on-chain category of a transaction.
//   - `export`: Renders an account's filtered history to a file.
//   - `follow`: Streams an account's new transactions as they appear.
func Run(ctx context.Context, d Deps) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "stxscan",
		Description:           "Command-line interface for browsing and annotating Stacks account history.",
		Usage:                 "stxscan [command] [flags]",
		Commands: []*cli.Command{
			listTransactionsCommand(d),
			showTransactionCommand(d),
			showBalanceCommand(d),
			categoryCommand(d),
			exportCommand(d),
			followCommand(d),
		},
	}

	return app.Run(ctx, os.Args)
}

// networkFlags are shared by every command that talks to the chain.
func networkFlags(d Deps) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "network",
			Usage: "Stacks network (mainnet or testnet)",
			Value: d.DefaultNetwork,
		},
		&cli.StringFlag{
			Name:  "api-base-url",
			Usage: "Override the network's default Hiro API endpoint",
			Value: d.DefaultAPIBaseURL,
		},
		&cli.StringFlag{
			Name:  "contract",
			Usage: "Category contract id (ADDRESS.name)",
			Value: d.CategoryContract,
		},
	}
}

// networkContext builds the per-invocation network context from the flags.
func networkContext(c *cli.Command) (stacks.Context, error) {
	network, err := stacks.ParseNetwork(c.String("network"))
	if err != nil {
		return stacks.Context{}, err
	}
	return stacks.NewContext(network, c.String("api-base-url"), c.String("contract"))
}
