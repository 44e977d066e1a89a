package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/tallyledger/tally/internal/app"
	"github.com/tallyledger/tally/pkg/fileutil"
	"github.com/tallyledger/tally/pkg/loggers"
	"github.com/tallyledger/tally/pkg/repo"
)

func prepareRepo(ctx *cli.Context) (*repo.Repo, error) {
	p, err := getRootPath(ctx)
	if err != nil {
		return nil, err
	}
	if !fileutil.Exist(filepath.Join(p, repo.CfgFileName)) {
		return nil, errors.New("tally repo not exist")
	}

	r, err := repo.Load(p)
	if err != nil {
		return nil, err
	}

	// close monitor in offline mode
	r.Config.Monitor.Enable = false

	fmt.Printf("%s-repo: %s\n", repo.AppName, r.RepoRoot)

	if err := loggers.Initialize(r, false); err != nil {
		return nil, err
	}
	return r, nil
}

// runOnTally runs fn against a fully wired instance and tears it down after,
// one process per call.
func runOnTally(ctx *cli.Context, fn func(t *app.Tally) error) error {
	r, err := prepareRepo(ctx)
	if err != nil {
		return err
	}

	tally, err := app.NewTally(r)
	if err != nil {
		return fmt.Errorf("init %s failed: %w", repo.AppName, err)
	}
	defer func() {
		if err := tally.Stop(); err != nil {
			loggers.Logger(loggers.App).WithField("err", err).Warn("Stop failed")
		}
	}()

	return fn(tally)
}

func pretty(d any) error {
	res, err := json.MarshalIndent(d, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(res))
	return nil
}
