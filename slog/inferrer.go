package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jobscout"
)

// Ensure LoggingInferrer implements jobscout.ProfileInferrer.
var _ jobscout.ProfileInferrer = (*LoggingInferrer)(nil)

// LoggingInferrer wraps a ProfileInferrer and logs the outcome of each
// inference: the chosen selector on success, the error code and the
// rejection reasons on failure.
type LoggingInferrer struct {
	next   jobscout.ProfileInferrer
	logger *slog.Logger
}

// NewLoggingInferrer creates a new LoggingInferrer.
func NewLoggingInferrer(next jobscout.ProfileInferrer, logger *slog.Logger) *LoggingInferrer {
	return &LoggingInferrer{next: next, logger: logger}
}

// Infer delegates to the wrapped inferrer and logs the result.
func (i *LoggingInferrer) Infer(entryURL, html string) (res *jobscout.AutoParseResult, err error) {
	defer func(begin time.Time) {
		if err != nil {
			i.logger.Info("inference",
				"url", entryURL,
				"code", jobscout.ErrorCode(err),
				"reasons", len(jobscout.ErrorReasons(err)),
				"duration", time.Since(begin),
				"err", err,
			)
			for _, reason := range jobscout.ErrorReasons(err) {
				i.logger.Debug("rejected candidate", "url", entryURL, "reason", reason)
			}
			return
		}
		i.logger.Info("inference",
			"url", entryURL,
			"selector", res.Audit.ChosenSelector,
			"platform", string(res.Audit.Platform),
			"candidates", len(res.Audit.Candidates),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return i.next.Infer(entryURL, html)
}
