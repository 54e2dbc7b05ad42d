package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"stxscan/internal/pkg/logger"
	"stxscan/internal/pkg/x/chflow"
)

// followCommand returns the CLI command that streams an account's new
// transactions as they appear on chain. The stream runs until interrupted.
//
// Usage example:
//
//	stxscan follow --address SP2J6... --jq .tx_id
func followCommand(d Deps) *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "address",
			Usage:    "Account address to follow",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "jq",
			Usage: "jq expression applied to each emitted transaction",
		},
	}
	flags = append(flags, networkFlags(d)...)

	return &cli.Command{
		Name:        "follow",
		Description: "Stream an account's new transactions until interrupted.",
		Usage:       "Follows an address, printing each new transaction as JSON.",
		Flags:       flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sctx, err := networkContext(c)
			if err != nil {
				return err
			}

			events, err := d.Follower.Follow(ctx, sctx, c.String("address"))
			if err != nil {
				return err
			}

			for {
				event, ok := chflow.Receive(ctx, events)
				if !ok {
					return nil
				}
				if event.Err != nil {
					logger.Warn(ctx, "poll failed", "error", event.Err)
					continue
				}

				if err := printDocument(os.Stdout, toRow(event.Tx), c.String("jq")); err != nil {
					return err
				}
			}
		},
	}
}
