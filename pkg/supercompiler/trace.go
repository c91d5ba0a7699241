package supercompiler

import (
	"log"
	"sync/atomic"

	"github.com/xyproto/env/v2"
)

// Fold and unfold decisions are logged with an [SC] prefix when the
// Supercompiler's Config.Trace is set, or for every instance in the
// process when SPSC_TRACE is set at startup.

var traceEnabled atomic.Bool

func init() {
	if env.Bool(EnvTrace) {
		traceEnabled.Store(true)
	}
}

func (sc *Supercompiler) tracef(format string, args ...any) {
	if !sc.cfg.Trace && !traceEnabled.Load() {
		return
	}
	log.Printf("[SC] "+format, args...)
}
