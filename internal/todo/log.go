package todo

import (
	"github.com/charmbracelet/log"
)

// LogChanges returns a subscriber that records every change at debug level.
func LogChanges(logger *log.Logger) func(State) {
	return func(s State) {
		done := 0
		for _, it := range s.Items {
			if it.Completed {
				done++
			}
		}
		logger.Debug("list changed",
			"items", len(s.Items),
			"done", done,
			"editing", s.EditingID(),
		)
	}
}
