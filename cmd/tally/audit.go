package main

import (
	"github.com/urfave/cli/v2"

	"github.com/tallyledger/tally/internal/noticelog"
)

var auditListArgs = struct {
	Limit int
}{}

var auditCMD = &cli.Command{
	Name:  "audit",
	Usage: "The notice audit trail commands",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "List recorded notices, newest first",
			Action: auditList,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:        "limit",
					Aliases:     []string{"l"},
					Usage:       "max records to show",
					Value:       20,
					Destination: &auditListArgs.Limit,
					Required:    false,
				},
			},
		},
	},
}

// auditList reads the sqlite sink directly, without taking the ledger storage
// lock, so it works while another process holds the repo open.
func auditList(ctx *cli.Context) error {
	r, err := prepareRepo(ctx)
	if err != nil {
		return err
	}

	store, err := noticelog.Open(r.AuditDBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(auditListArgs.Limit)
	if err != nil {
		return err
	}
	return pretty(records)
}
