package events

import (
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Notice is the human-readable record a token operation emits on success.
type Notice struct {
	Caller  ethcommon.Address
	Text    string
	Emitted time.Time
}
