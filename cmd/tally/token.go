package main

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/tallyledger/tally/internal/app"
	"github.com/tallyledger/tally/pkg/types"
)

var fromFlagVar string

func fromFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "from",
		Usage:       "Caller address, defaults to the genesis deployer",
		Destination: &fromFlagVar,
		Required:    false,
	}
}

var tokenTransferArgs = struct {
	To     string
	Amount string
}{}

var tokenTransferFromArgs = struct {
	Sender string
	To     string
	Amount string
}{}

var tokenApproveArgs = struct {
	Spender string
	Amount  string
}{}

var tokenAllowanceDeltaArgs = struct {
	Spender string
	Amount  string
}{}

var tokenMintArgs = struct {
	To     string
	Amount string
}{}

var tokenAuthorizeArgs = struct {
	Address string
}{}

var tokenBalanceArgs = struct {
	Address string
}{}

var tokenAllowanceArgs = struct {
	Owner   string
	Spender string
}{}

var tokenCMD = &cli.Command{
	Name:  "token",
	Usage: "The token operation commands",
	Subcommands: []*cli.Command{
		{
			Name:   "info",
			Usage:  "Show token metadata, total supply and the minter set",
			Action: tokenInfo,
		},
		{
			Name:   "balance",
			Usage:  "Show the balance of an account",
			Action: tokenBalance,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "address",
					Aliases:     []string{"a"},
					Usage:       "account address",
					Destination: &tokenBalanceArgs.Address,
					Required:    true,
				},
			},
		},
		{
			Name:   "allowance",
			Usage:  "Show the remaining allowance from owner to spender",
			Action: tokenAllowance,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "owner",
					Usage:       "owner address",
					Destination: &tokenAllowanceArgs.Owner,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "spender",
					Usage:       "spender address",
					Destination: &tokenAllowanceArgs.Spender,
					Required:    true,
				},
			},
		},
		{
			Name:   "total-supply",
			Usage:  "Show the total supply",
			Action: tokenTotalSupply,
		},
		{
			Name:   "transfer",
			Usage:  "Transfer tokens from the caller to another account",
			Action: tokenTransfer,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "to",
					Usage:       "recipient address",
					Destination: &tokenTransferArgs.To,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "amount",
					Usage:       "amount to transfer",
					Destination: &tokenTransferArgs.Amount,
					Required:    true,
				},
				fromFlag(),
			},
		},
		{
			Name:   "transfer-from",
			Usage:  "Transfer tokens between accounts against an allowance granted to the caller",
			Action: tokenTransferFrom,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "sender",
					Usage:       "account the tokens are taken from",
					Destination: &tokenTransferFromArgs.Sender,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "to",
					Usage:       "recipient address",
					Destination: &tokenTransferFromArgs.To,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "amount",
					Usage:       "amount to transfer",
					Destination: &tokenTransferFromArgs.Amount,
					Required:    true,
				},
				fromFlag(),
			},
		},
		{
			Name:   "approve",
			Usage:  "Set the allowance for a spender, zero resets it",
			Action: tokenApprove,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "spender",
					Usage:       "spender address",
					Destination: &tokenApproveArgs.Spender,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "amount",
					Usage:       "allowance amount",
					Destination: &tokenApproveArgs.Amount,
					Required:    true,
				},
				fromFlag(),
			},
		},
		{
			Name:   "increase-allowance",
			Usage:  "Grow the allowance for a spender",
			Action: tokenIncreaseAllowance,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "spender",
					Usage:       "spender address",
					Destination: &tokenAllowanceDeltaArgs.Spender,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "amount",
					Usage:       "allowance delta",
					Destination: &tokenAllowanceDeltaArgs.Amount,
					Required:    true,
				},
				fromFlag(),
			},
		},
		{
			Name:   "decrease-allowance",
			Usage:  "Shrink the allowance for a spender",
			Action: tokenDecreaseAllowance,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "spender",
					Usage:       "spender address",
					Destination: &tokenAllowanceDeltaArgs.Spender,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "amount",
					Usage:       "allowance delta",
					Destination: &tokenAllowanceDeltaArgs.Amount,
					Required:    true,
				},
				fromFlag(),
			},
		},
		{
			Name:   "mint",
			Usage:  "Mint new tokens to an account, authorized callers only",
			Action: tokenMint,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "to",
					Usage:       "recipient address",
					Destination: &tokenMintArgs.To,
					Required:    true,
				},
				&cli.StringFlag{
					Name:        "amount",
					Usage:       "amount to mint",
					Destination: &tokenMintArgs.Amount,
					Required:    true,
				},
				fromFlag(),
			},
		},
		{
			Name:   "add-authorized-caller",
			Usage:  "Admit an address to the minter set, deployer only",
			Action: tokenAddAuthorizedCaller,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:        "address",
					Aliases:     []string{"a"},
					Usage:       "address to authorize",
					Destination: &tokenAuthorizeArgs.Address,
					Required:    true,
				},
				fromFlag(),
			},
		},
	},
}

func tokenInfo(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		meta, err := t.Token.Metadata()
		if err != nil {
			return err
		}
		supply, err := t.Token.TotalSupply()
		if err != nil {
			return err
		}
		authorized, err := t.Token.AuthorizedCallers()
		if err != nil {
			return err
		}
		return pretty(struct {
			Name              string   `json:"name"`
			Symbol            string   `json:"symbol"`
			Decimals          uint8    `json:"decimals"`
			Icon              *string  `json:"icon,omitempty"`
			TotalSupply       string   `json:"total_supply"`
			AuthorizedCallers []string `json:"authorized_callers"`
		}{meta.Name, meta.Symbol, meta.Decimals, meta.Icon, supply.String(), authorized})
	})
}

func tokenBalance(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		addr, err := parseAddr(tokenBalanceArgs.Address)
		if err != nil {
			return err
		}
		balance, err := t.Token.BalanceOf(addr)
		if err != nil {
			return err
		}
		fmt.Println(balance)
		return nil
	})
}

func tokenAllowance(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		owner, err := parseAddr(tokenAllowanceArgs.Owner)
		if err != nil {
			return err
		}
		spender, err := parseAddr(tokenAllowanceArgs.Spender)
		if err != nil {
			return err
		}
		allowance, err := t.Token.Allowance(owner, spender)
		if err != nil {
			return err
		}
		fmt.Println(allowance)
		return nil
	})
}

func tokenTotalSupply(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		supply, err := t.Token.TotalSupply()
		if err != nil {
			return err
		}
		fmt.Println(supply)
		return nil
	})
}

func tokenTransfer(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		to, err := parseAddr(tokenTransferArgs.To)
		if err != nil {
			return err
		}
		amount, err := types.U128FromString(tokenTransferArgs.Amount)
		if err != nil {
			return err
		}
		caller, err := resolveCaller(t)
		if err != nil {
			return err
		}

		t.Env.SetCaller(caller)
		if err := t.Token.Transfer(to, amount); err != nil {
			return err
		}

		balance, err := t.Token.BalanceOf(caller)
		if err != nil {
			return err
		}
		fmt.Printf("balance of %s is now %s\n", caller, balance)
		return nil
	})
}

func tokenTransferFrom(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		sender, err := parseAddr(tokenTransferFromArgs.Sender)
		if err != nil {
			return err
		}
		to, err := parseAddr(tokenTransferFromArgs.To)
		if err != nil {
			return err
		}
		amount, err := types.U128FromString(tokenTransferFromArgs.Amount)
		if err != nil {
			return err
		}
		caller, err := resolveCaller(t)
		if err != nil {
			return err
		}

		t.Env.SetCaller(caller)
		if err := t.Token.TransferFrom(sender, to, amount); err != nil {
			return err
		}

		left, err := t.Token.Allowance(sender, caller)
		if err != nil {
			return err
		}
		fmt.Printf("remaining allowance of %s for %s: %s\n", sender, caller, left)
		return nil
	})
}

func tokenApprove(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		spender, err := parseAddr(tokenApproveArgs.Spender)
		if err != nil {
			return err
		}
		amount, err := types.U128FromString(tokenApproveArgs.Amount)
		if err != nil {
			return err
		}
		caller, err := resolveCaller(t)
		if err != nil {
			return err
		}

		t.Env.SetCaller(caller)
		if err := t.Token.Approve(spender, amount); err != nil {
			return err
		}
		fmt.Printf("allowance of %s for %s set to %s\n", caller, spender, amount)
		return nil
	})
}

func tokenIncreaseAllowance(ctx *cli.Context) error {
	return updateAllowance(ctx, func(t *app.Tally, spender ethcommon.Address, amount types.U128) error {
		return t.Token.IncreaseAllowance(spender, amount)
	})
}

func tokenDecreaseAllowance(ctx *cli.Context) error {
	return updateAllowance(ctx, func(t *app.Tally, spender ethcommon.Address, amount types.U128) error {
		return t.Token.DecreaseAllowance(spender, amount)
	})
}

func updateAllowance(ctx *cli.Context, op func(t *app.Tally, spender ethcommon.Address, amount types.U128) error) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		spender, err := parseAddr(tokenAllowanceDeltaArgs.Spender)
		if err != nil {
			return err
		}
		amount, err := types.U128FromString(tokenAllowanceDeltaArgs.Amount)
		if err != nil {
			return err
		}
		caller, err := resolveCaller(t)
		if err != nil {
			return err
		}

		t.Env.SetCaller(caller)
		if err := op(t, spender, amount); err != nil {
			return err
		}

		left, err := t.Token.Allowance(caller, spender)
		if err != nil {
			return err
		}
		fmt.Printf("allowance of %s for %s is now %s\n", caller, spender, left)
		return nil
	})
}

func tokenMint(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		to, err := parseAddr(tokenMintArgs.To)
		if err != nil {
			return err
		}
		amount, err := types.U128FromString(tokenMintArgs.Amount)
		if err != nil {
			return err
		}
		caller, err := resolveCaller(t)
		if err != nil {
			return err
		}

		t.Env.SetCaller(caller)
		if err := t.Token.Mint(to, amount); err != nil {
			return err
		}

		supply, err := t.Token.TotalSupply()
		if err != nil {
			return err
		}
		fmt.Printf("total supply is now %s\n", supply)
		return nil
	})
}

func tokenAddAuthorizedCaller(ctx *cli.Context) error {
	return runOnTally(ctx, func(t *app.Tally) error {
		addr, err := parseAddr(tokenAuthorizeArgs.Address)
		if err != nil {
			return err
		}
		caller, err := resolveCaller(t)
		if err != nil {
			return err
		}

		t.Env.SetCaller(caller)
		if err := t.Token.AddAuthorizedCaller(addr); err != nil {
			return err
		}

		authorized, err := t.Token.AuthorizedCallers()
		if err != nil {
			return err
		}
		return pretty(authorized)
	})
}

func parseAddr(s string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(s) {
		return ethcommon.Address{}, errors.Errorf("invalid address %s", s)
	}
	return ethcommon.HexToAddress(s), nil
}

func resolveCaller(t *app.Tally) (ethcommon.Address, error) {
	if fromFlagVar == "" {
		return t.Env.Deployer(), nil
	}
	return parseAddr(fromFlagVar)
}
