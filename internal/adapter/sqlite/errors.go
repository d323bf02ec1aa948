package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/vocab/internal/domain"
)

// MapError converts database/sql errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, key, domain.ErrNotFound)
	}

	// An index built by an older binary may lack a table.
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%s %s: %w: %v", entity, key, domain.ErrUnavailable, err)
	}

	return fmt.Errorf("%s %s: %w", entity, key, err)
}
