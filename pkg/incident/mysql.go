package incident

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// tableNamePattern restricts source table names to plain identifiers since
// the table name cannot be bound as a query parameter.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// LoadMySQL reads an incident table from a MySQL table reachable through dsn.
// The table must expose the same required columns as the CSV source. Any
// failure is reported as an InputError before analysis runs.
func LoadMySQL(ctx context.Context, dsn, table string) (Table, error) {
	source := fmt.Sprintf("mysql:%s", table)
	if !tableNamePattern.MatchString(table) {
		return nil, &InputError{Source: source, Err: fmt.Errorf("invalid table name")}
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, &InputError{Source: source, Err: err}
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, &InputError{Source: source, Err: fmt.Errorf("connect: %w", err)}
	}

	query := fmt.Sprintf("SELECT %s FROM `%s`", strings.Join(requiredColumns, ", "), table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &InputError{Source: source, Err: err}
	}
	defer rows.Close()

	var out Table
	for rows.Next() {
		var (
			rec       Record
			severity  string
			rootCause sql.NullString
		)
		if err := rows.Scan(&rec.IncidentID, &rec.Category, &severity, &rec.ResolutionHours, &rec.Recurrence, &rootCause); err != nil {
			return nil, &InputError{Source: source, Err: fmt.Errorf("scan row: %w", err)}
		}
		rec.Severity = Severity(severity)
		rec.RootCause = rootCause.String

		if rec.Category == "" {
			return nil, &InputError{Source: source, Err: fmt.Errorf("incident %s: empty category", rec.IncidentID)}
		}
		if !rec.Severity.Valid() {
			return nil, &DataQualityError{
				IncidentID: rec.IncidentID,
				Field:      "severity",
				Value:      severity,
				Reason:     "is not one of Critical, High, Medium, Low",
			}
		}
		if rec.ResolutionHours < 0 {
			return nil, &InputError{Source: source, Err: fmt.Errorf("incident %s: negative resolution_time_hours", rec.IncidentID)}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &InputError{Source: source, Err: err}
	}
	if len(out) == 0 {
		return nil, &InputError{Source: source, Err: fmt.Errorf("no incident records")}
	}
	return out, nil
}
