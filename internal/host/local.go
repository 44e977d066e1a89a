package host

import (
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/sirupsen/logrus"

	"github.com/tallyledger/tally/internal/storagemgr/kv"
	"github.com/tallyledger/tally/pkg/events"
	"github.com/tallyledger/tally/pkg/loggers"
)

var _ Env = (*LocalEnv)(nil)

// LocalEnv is the in-process execution environment. Calls run strictly
// serially, so a plain field carries the current caller between calls.
// LocalEnv must not be copied after first use.
type LocalEnv struct {
	storage  kv.Storage
	deployer ethcommon.Address
	caller   ethcommon.Address

	noticeFeed event.Feed
	logger     logrus.FieldLogger
}

// NewLocalEnv wires an environment over storage. The caller defaults to the
// deployer until SetCaller changes it.
func NewLocalEnv(storage kv.Storage, deployer ethcommon.Address) *LocalEnv {
	return &LocalEnv{
		storage:  storage,
		deployer: deployer,
		caller:   deployer,
		logger:   loggers.Logger(loggers.Notice),
	}
}

// SetCaller switches the account subsequent calls run on behalf of.
func (e *LocalEnv) SetCaller(caller ethcommon.Address) {
	e.caller = caller
}

func (e *LocalEnv) Caller() ethcommon.Address {
	return e.caller
}

func (e *LocalEnv) Deployer() ethcommon.Address {
	return e.deployer
}

func (e *LocalEnv) GetState(key []byte) ([]byte, error) {
	return e.storage.Get(key)
}

func (e *LocalEnv) SetState(key []byte, value []byte) error {
	return e.storage.Put(key, value)
}

// EmitNotice logs the notice and hands it to every subscriber.
func (e *LocalEnv) EmitNotice(text string) {
	notice := events.Notice{
		Caller:  e.caller,
		Text:    text,
		Emitted: time.Now(),
	}
	e.logger.WithFields(logrus.Fields{
		"caller": notice.Caller.String(),
	}).Info(text)
	e.noticeFeed.Send(notice)
}

// SubscribeNotices delivers every future notice to ch until the subscription
// is cancelled.
func (e *LocalEnv) SubscribeNotices(ch chan<- events.Notice) event.Subscription {
	return e.noticeFeed.Subscribe(ch)
}
