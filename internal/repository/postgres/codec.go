package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Zaniyar/grantmaster/internal/entities"
)

const foreignKeyViolation = "23503"

func toJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return b, nil
}

func fromJSON[T any](raw []byte) ([]T, error) {
	out := make([]T, 0)
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if out == nil {
		out = make([]T, 0)
	}
	return out, nil
}

// optionalUUID parses a reference column value; "" means no reference.
func optionalUUID(field, id string) (*uuid.UUID, error) {
	if id == "" {
		return nil, nil
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", entities.ErrInvalidArgument, field, id, err)
	}
	return &u, nil
}

// translate maps a dangling reference to an invalid argument.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %s: %s", entities.ErrInvalidArgument, op, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
