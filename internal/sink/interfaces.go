package sink

import (
	"context"
	"time"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

// Emitter is the capability the decision engine's caller emits events
// through. Implementations do not retry; a failed emit is reported to the
// caller, which logs and continues with the next event.
type Emitter interface {
	// Emit delivers one decided event. flagEvalTime is the evaluation time
	// of the flag assignment the event depends on; delayed sinks must stamp
	// the record strictly after it.
	Emit(ctx context.Context, event domain.SimulatedEvent, user domain.UserProfile, flagEvalTime time.Time) error

	// Flush forces delivery of any buffered events.
	Flush(ctx context.Context) error

	// Close releases sink resources.
	Close() error
}
