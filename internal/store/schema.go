package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

var ErrSchemaMismatch = errors.New("appointments table does not match the expected columns")

const (
	tableName       = "appointments"
	primaryIDColumn = "appointment_id"
	legacyIDColumn  = "id"
)

// columns every deployment must carry besides the identifier
var dataColumns = []string{"patient_name", "patient_email", "appointment_date", "purpose"}

type statements struct {
	idColumn string
	list     string
	insert   string
}

func buildStatements(idColumn string) statements {
	returning := fmt.Sprintf(
		`%s::text AS id, patient_name, patient_email, appointment_date::text AS appointment_date, purpose`,
		pgx.Identifier{idColumn}.Sanitize(),
	)
	return statements{
		idColumn: idColumn,
		list:     `SELECT ` + returning + ` FROM ` + tableName,
		insert: `INSERT INTO ` + tableName + ` (patient_name, patient_email, appointment_date, purpose)
		 VALUES ($1, $2, $3, $4)
		 RETURNING ` + returning,
	}
}

// VerifySchema checks the deployed appointments table against the column
// contract and picks the identifier column. appointment_id wins over id
// when both exist.
func (s *Store) VerifySchema(ctx context.Context) error {
	rows, err := s.db.Query(ctx,
		`SELECT column_name::text FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = $1`, tableName,
	)
	if err != nil {
		return fmt.Errorf("read %s columns: %w", tableName, err)
	}
	cols, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("read %s columns: %w", tableName, err)
	}

	id, err := resolveIDColumn(cols)
	if err != nil {
		return err
	}
	s.stmts = buildStatements(id)
	return nil
}

func resolveIDColumn(cols []string) (string, error) {
	if len(cols) == 0 {
		return "", fmt.Errorf("%w: table %q not found", ErrSchemaMismatch, tableName)
	}

	have := make(map[string]bool, len(cols))
	for _, c := range cols {
		have[strings.ToLower(c)] = true
	}

	var missing []string
	id := ""
	switch {
	case have[primaryIDColumn]:
		id = primaryIDColumn
	case have[legacyIDColumn]:
		id = legacyIDColumn
	default:
		missing = append(missing, primaryIDColumn+" (or "+legacyIDColumn+")")
	}
	for _, c := range dataColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return id, nil
}
