package sqlite

import (
	"errors"
	"strings"

	"github.com/phrazzld/userdir-api/internal/store"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// classifyWriteError wraps a failed INSERT or UPDATE in a *store.WriteError.
// Extended result codes are checked first; the constraint message is the
// fallback when only the primary SQLITE_CONSTRAINT code is reported.
func classifyWriteError(op string, err error) *store.WriteError {
	message := err.Error()

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
			return store.NewWriteError(op, store.ReasonRequiredFieldMissing, constraintColumn(message), err)
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return store.NewWriteError(op, store.ReasonUniqueViolation, constraintColumn(message), err)
		}
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "not null constraint failed"):
		return store.NewWriteError(op, store.ReasonRequiredFieldMissing, constraintColumn(message), err)
	case strings.Contains(lower, "unique constraint failed"):
		return store.NewWriteError(op, store.ReasonUniqueViolation, constraintColumn(message), err)
	}
	return store.NewWriteError(op, store.ReasonOther, "", err)
}

// constraintColumn extracts "name" from "... constraint failed: users.name (...)".
func constraintColumn(message string) string {
	const marker = "constraint failed: "
	i := strings.LastIndex(message, marker)
	if i < 0 {
		return ""
	}
	after := message[i+len(marker):]
	if i := strings.IndexAny(after, " ,("); i >= 0 {
		after = after[:i]
	}
	if _, column, ok := strings.Cut(after, "."); ok {
		return column
	}
	return after
}
