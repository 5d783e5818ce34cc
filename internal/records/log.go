package records

import "log/slog"

func logMirrorSkip(entity, id string, err error) {
	slog.Warn("mirror enqueue skipped", "entity", entity, "id", id, "err", err)
}
