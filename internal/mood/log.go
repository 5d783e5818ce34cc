package mood

import "log/slog"

func logCacheSkip(err error) {
	slog.Warn("mood cache refresh skipped", "err", err)
}
