package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/tallyledger/tally/internal/app"
	"github.com/tallyledger/tally/internal/token"
	"github.com/tallyledger/tally/pkg/fileutil"
	"github.com/tallyledger/tally/pkg/loggers"
	"github.com/tallyledger/tally/pkg/repo"
)

func start(ctx *cli.Context) error {
	p, err := getRootPath(ctx)
	if err != nil {
		return err
	}

	if !fileutil.Exist(filepath.Join(p, repo.CfgFileName)) {
		fmt.Println("tally is not initialized, run 'tally config generate' first")
		return nil
	}

	r, err := repo.Load(p)
	if err != nil {
		return err
	}

	if err := loggers.Initialize(r, true); err != nil {
		return err
	}

	log := loggers.Logger(loggers.App)
	printVersion(func(c string) {
		log.Info(c)
	})
	r.PrintInfo(func(c string) {
		log.Info(c)
	})

	var wg sync.WaitGroup
	err = func() error {
		if err := repo.WritePid(r.RepoRoot); err != nil {
			return fmt.Errorf("write pid error: %s", err)
		}

		tally, err := app.NewTally(r)
		if err != nil {
			return fmt.Errorf("init %s failed: %w", repo.AppName, err)
		}

		// prime the supply gauge so the first scrape reflects the ledger
		if _, err := tally.Token.TotalSupply(); err != nil && !errors.Is(err, token.ErrNotInitialized) {
			return err
		}

		wg.Add(1)
		handleShutdown(tally, &wg)

		if err := tally.Start(); err != nil {
			return fmt.Errorf("start %s failed: %w", repo.AppName, err)
		}

		return nil
	}()
	if err != nil {
		log.WithField("err", err).Error("Startup failed")
		return err
	}

	wg.Wait()

	if err := repo.RemovePID(r.RepoRoot); err != nil {
		log.WithField("err", err).Error("Remove pid failed")
		return fmt.Errorf("remove pid file error: %s", err)
	}

	return nil
}

func printVersion(writer func(c string)) {
	writer(fmt.Sprintf("%s version: %s-%s-%s", repo.AppName, repo.BuildVersion, repo.BuildBranch, repo.BuildCommit))
	writer(fmt.Sprintf("App build date: %s", repo.BuildDate))
	writer(fmt.Sprintf("System version: %s", repo.Platform))
	writer(fmt.Sprintf("Golang version: %s", repo.GoVersion))
}

func handleShutdown(node *app.Tally, wg *sync.WaitGroup) {
	var stop = make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGTERM)
	signal.Notify(stop, syscall.SIGINT)

	go func() {
		<-stop
		fmt.Println("received interrupt signal, shutting down...")
		if err := node.Stop(); err != nil {
			panic(err)
		}
		wg.Done()
	}()
}
