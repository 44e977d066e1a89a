package repo

import (
	"fmt"
	"runtime"
)

// build info, overridden by -ldflags at release time
var (
	BuildVersion = "dev"
	BuildBranch  = "unknown"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

var (
	Platform  = fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH)
	GoVersion = runtime.Version()
)
