package app

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/strategy"
	"github.com/common-nighthawk/go-figure"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/ethereum/go-ethereum/event"
	"github.com/sirupsen/logrus"

	"github.com/tallyledger/tally/internal/host"
	"github.com/tallyledger/tally/internal/noticelog"
	"github.com/tallyledger/tally/internal/storagemgr"
	"github.com/tallyledger/tally/internal/storagemgr/kv"
	"github.com/tallyledger/tally/internal/token"
	"github.com/tallyledger/tally/pkg/events"
	"github.com/tallyledger/tally/pkg/loggers"
	"github.com/tallyledger/tally/pkg/profile"
	"github.com/tallyledger/tally/pkg/repo"
)

// Tally wires the token contract, its backing storage, the optional audit
// trail, and the metrics endpoint together.
type Tally struct {
	Repo    *repo.Repo
	Storage kv.Storage
	Env     *host.LocalEnv
	Token   *token.FToken
	Monitor *profile.Monitor

	audit     *noticelog.Store
	auditSub  event.Subscription
	auditCh   chan events.Notice
	auditDone chan struct{}

	logger logrus.FieldLogger
}

func NewTally(rep *repo.Repo) (*Tally, error) {
	if err := PrepareTally(rep); err != nil {
		return nil, err
	}

	logger := loggers.Logger(loggers.App)

	var ledgerStorage kv.Storage
	if err := retry.Retry(func(attempt uint) error {
		var err error
		ledgerStorage, err = storagemgr.Open(repo.GetStoragePath(rep.RepoRoot, storagemgr.Ledger))
		if err != nil {
			logger.WithFields(logrus.Fields{
				"attempt": attempt,
				"err":     err,
			}).Warn("Open ledger storage failed")
		}
		return err
	}, strategy.Limit(5), strategy.Wait(500*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("open ledger storage failed: %w", err)
	}

	cached := storagemgr.NewCachedStorage(ledgerStorage, rep.Config.Storage.KvCacheSize)
	env := host.NewLocalEnv(cached, ethcommon.HexToAddress(rep.GenesisConfig.Deployer))

	ft := token.New(loggers.Logger(loggers.Token))
	ft.SetContext(env)

	tally := &Tally{
		Repo:    rep,
		Storage: cached,
		Env:     env,
		Token:   ft,
		logger:  logger,
	}

	if rep.Config.Monitor.Enable {
		tally.Monitor = profile.NewMonitor(rep.Config.Monitor.Port)
	}

	if rep.Config.Audit.Enable {
		if err := tally.startAudit(); err != nil {
			return nil, err
		}
	}

	return tally, nil
}

// PrepareTally registers the storage builders and raises the fd limit so the
// kv backends can open their file handles.
func PrepareTally(rep *repo.Repo) error {
	if err := storagemgr.Initialize(rep.Config.Storage.KvType, rep.Config.Storage.KvCacheSize, rep.Config.Storage.Sync); err != nil {
		return fmt.Errorf("storagemgr initialize: %w", err)
	}
	if err := raiseUlimit(rep.Config.Ulimit); err != nil {
		return fmt.Errorf("raise ulimit: %w", err)
	}
	return nil
}

// startAudit opens the notice database and drains emitted notices into it
// until Stop closes the subscription.
func (t *Tally) startAudit() error {
	store, err := noticelog.Open(t.Repo.AuditDBPath())
	if err != nil {
		return fmt.Errorf("open audit db: %w", err)
	}

	t.audit = store
	t.auditCh = make(chan events.Notice, 64)
	t.auditDone = make(chan struct{})
	t.auditSub = t.Env.SubscribeNotices(t.auditCh)

	go func() {
		defer close(t.auditDone)
		for n := range t.auditCh {
			t.audit.Append(n)
		}
	}()

	return nil
}

func (t *Tally) Start() error {
	if t.Monitor != nil {
		t.Monitor.Start()
	}

	t.printLogo()

	return nil
}

// Stop tears the parts down in dependency order. The audit drain is closed
// before the storage so every delivered notice lands in the database.
func (t *Tally) Stop() error {
	if t.auditSub != nil {
		t.auditSub.Unsubscribe()
		close(t.auditCh)
		<-t.auditDone
		if err := t.audit.Close(); err != nil {
			return fmt.Errorf("close audit db: %w", err)
		}
	}

	if t.Monitor != nil {
		if err := t.Monitor.Stop(); err != nil {
			return fmt.Errorf("stop monitor: %w", err)
		}
	}

	if err := t.Storage.Close(); err != nil {
		return fmt.Errorf("close ledger storage: %w", err)
	}

	t.logger.Infof("%s stopped", repo.AppName)

	return nil
}

func (t *Tally) printLogo() {
	fig := figure.NewFigure(repo.AppName, "slant", true)
	t.logger.Infof(`
=========================================================================================
%s
=========================================================================================
`, fig.String())
}

func raiseUlimit(limitNew uint64) error {
	_, err := fdlimit.Raise(limitNew)
	if err != nil {
		return fmt.Errorf("set limit failed: %w", err)
	}

	var limit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &limit); err != nil {
		return fmt.Errorf("getrlimit error: %w", err)
	}

	if limit.Cur != limitNew && limit.Cur != limit.Max {
		return errors.New("failed to raise ulimit")
	}

	return nil
}
