package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tallyledger/tally/internal/app"
	"github.com/tallyledger/tally/internal/genesis"
)

var initCMD = &cli.Command{
	Name:   "init",
	Usage:  "Initialize the token ledger from the genesis config",
	Action: initLedger,
}

func initLedger(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		ok, err := genesis.IsInitialized(t.Env)
		if err != nil {
			return err
		}
		if ok {
			fmt.Println("token ledger already initialized")
			return nil
		}

		if err := genesis.Initialize(t.Repo.GenesisConfig, t.Env, t.Token); err != nil {
			return fmt.Errorf("genesis initialize failed: %w", err)
		}

		supply, err := t.Token.TotalSupply()
		if err != nil {
			return err
		}
		fmt.Printf("token %s (%s) initialized, total supply %s\n",
			t.Repo.GenesisConfig.Token.Name, t.Repo.GenesisConfig.Token.Symbol, supply)
		return nil
	})
}
