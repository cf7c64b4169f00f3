package oracle

import (
	"context"
	"time"

	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
)

// WithTimeout bounds a CardinalityOracle call by d, matching
// config.Timeouts.OracleCallTimeout. It exists for oracle implementations
// that do real cryptographic work per call (ECDHOracle) rather than a map
// lookup, where a stuck or slow call should not hang an attack engine's
// budget loop forever. A timed-out call logs at ERROR and reports zero
// intersection rather than blocking the caller.
func WithTimeout(d time.Duration, o CardinalityOracle) CardinalityOracle {
	if d <= 0 {
		return o
	}
	return func(a, y Set) int {
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()

		result := make(chan int, 1)
		go func() { result <- o(a, y) }()

		select {
		case n := <-result:
			return n
		case <-ctx.Done():
			telemetry.Error("oracle: call exceeded timeout of %s, reporting zero intersection", d)
			return 0
		}
	}
}
