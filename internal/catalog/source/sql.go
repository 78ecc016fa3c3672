package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/jobsearch/internal/catalog"
	"github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/database"
	apperrors "github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/errors"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ReadTable loads records from table, ordered by its id column. The table
// needs the columns id, title, company, salary, location, skills and
// description; skills is a comma-separated list.
func ReadTable(ctx context.Context, client *database.Client, table string) ([]catalog.JobRecord, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("%w: table name %q", apperrors.ErrInvalidInput, table)
	}
	query := fmt.Sprintf(
		`SELECT title, company, salary, location, skills, description FROM %s ORDER BY id`, table)
	rows, err := client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	records := make([]catalog.JobRecord, 0)
	for rows.Next() {
		var (
			r                                   catalog.JobRecord
			company, location, skills, descript sql.NullString
		)
		if err := rows.Scan(&r.Title, &company, &r.Salary, &location, &skills, &descript); err != nil {
			return nil, fmt.Errorf("scanning %s row %d: %w", table, len(records), err)
		}
		r.Company = company.String
		r.Location = location.String
		r.Description = descript.String
		r.Skills = splitSkills(skills.String)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	return records, nil
}

func splitSkills(raw string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
