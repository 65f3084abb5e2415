package xlcore

import (
	"log/slog"
	"time"
)

const selfTestIterations = 1_000_000

// SelfTestResult reports a runtime speed check.
type SelfTestResult struct {
	Iterations int     `json:"iterations"`
	Sum        float64 `json:"sum"`
	ElapsedMs  float64 `json:"elapsed_ms"`
}

// SelfTest runs a fixed floating-point accumulation loop and reports how long
// it took. It sanity-checks execution speed only.
func SelfTest(logger *slog.Logger) SelfTestResult {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	sum := 0.0
	for i := 0; i < selfTestIterations; i++ {
		sum += float64(i)
	}
	result := SelfTestResult{
		Iterations: selfTestIterations,
		Sum:        sum,
		ElapsedMs:  elapsedMs(start),
	}

	logger.Info("Performance self-test completed", "elapsed_ms", result.ElapsedMs, "sum", result.Sum)
	return result
}
