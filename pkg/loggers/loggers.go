package loggers

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tallyledger/tally/pkg/log"
	"github.com/tallyledger/tally/pkg/repo"
)

const (
	App     = "app"
	Token   = "token"
	Ledger  = "ledger"
	Storage = "storage"
	Notice  = "notice"
	Audit   = "audit"
)

var w = &LoggerWrapper{
	loggers: map[string]*logrus.Entry{
		App:     log.NewWithModule(App),
		Token:   log.NewWithModule(Token),
		Ledger:  log.NewWithModule(Ledger),
		Storage: log.NewWithModule(Storage),
		Notice:  log.NewWithModule(Notice),
		Audit:   log.NewWithModule(Audit),
	},
}

type LoggerWrapper struct {
	loggers map[string]*logrus.Entry
}

func Initialize(rep *repo.Repo, persist bool) error {
	config := rep.Config
	err := log.Initialize(
		log.WithLevel(config.Log.Level),
		log.WithEnableColor(config.Log.EnableColor),
		log.WithDisableTimestamp(config.Log.DisableTimestamp),
		log.WithPersist(persist && config.Log.EnablePersist),
		log.WithFilePath(filepath.Join(rep.RepoRoot, repo.LogsDirName)),
		log.WithFileName(config.Log.Filename),
		log.WithMaxAge(time.Duration(config.Log.MaxAge)*24*time.Hour),
		log.WithRotationTime(config.Log.RotationTime.ToDuration()),
	)
	if err != nil {
		return fmt.Errorf("log initialize: %w", err)
	}

	m := make(map[string]*logrus.Entry)
	m[App] = log.NewWithModule(App)
	m[App].Logger.SetLevel(log.ParseLevel(config.Log.Module.APP))
	m[Token] = log.NewWithModule(Token)
	m[Token].Logger.SetLevel(log.ParseLevel(config.Log.Module.Token))
	m[Ledger] = log.NewWithModule(Ledger)
	m[Ledger].Logger.SetLevel(log.ParseLevel(config.Log.Module.Ledger))
	m[Storage] = log.NewWithModule(Storage)
	m[Storage].Logger.SetLevel(log.ParseLevel(config.Log.Module.Storage))
	m[Notice] = log.NewWithModule(Notice)
	m[Notice].Logger.SetLevel(log.ParseLevel(config.Log.Module.Notice))
	m[Audit] = log.NewWithModule(Audit)
	m[Audit].Logger.SetLevel(log.ParseLevel(config.Log.Module.Audit))

	w = &LoggerWrapper{loggers: m}
	return nil
}

func Logger(name string) logrus.FieldLogger {
	return w.loggers[name]
}
