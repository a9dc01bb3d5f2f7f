package state

import (
	"runtime"

	"github.com/google/uuid"
)

// builtinProperties returns the reserved properties every ProjectState
// carries, keyed by lower-cased name. BuildSessionId is generated fresh per
// state so tooling can correlate conditioned-properties output with the
// evaluation that produced it.
func builtinProperties() map[string]string {
	return map[string]string{
		"os":             runtime.GOOS,
		"buildsessionid": uuid.NewString(),
	}
}
