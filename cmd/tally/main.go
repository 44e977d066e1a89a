package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/tallyledger/tally/pkg/fileutil"
	"github.com/tallyledger/tally/pkg/repo"
)

func main() {
	loadEnvFile()

	app := cli.NewApp()
	app.Name = repo.AppName
	app.Usage = "A fungible-token ledger with authorized minting and allowance bookkeeping"
	app.Compiled = time.Now()

	cli.VersionPrinter = func(c *cli.Context) {
		printVersion(func(c string) {
			fmt.Println(c)
		})
	}

	// global flags
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "repo",
			Usage: "Work path",
		},
	}

	app.Commands = []*cli.Command{
		configCMD,
		initCMD,
		tokenCMD,
		auditCMD,
		{
			Name:   "start",
			Usage:  "Start a long-running process that serves metrics and collects notices",
			Action: start,
		},
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "Show code version",
			Action: func(ctx *cli.Context) error {
				printVersion(func(c string) {
					fmt.Println(c)
				})
				return nil
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
	}
}

func loadEnvFile() {
	envFile := os.Getenv("TALLY_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if fileutil.Exist(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Printf("load env file %s failed: %s\n", envFile, err)
			return
		}
	}
}
