package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/designstudio/internal/domain/model"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// searchPredicate matches term in any of the columns, case-insensitively.
func searchPredicate(term string, columns ...string) sq.Sqlizer {
	pattern := containsPattern(term)
	return sq.Or(lo.Map(columns, func(col string, _ int) sq.Sqlizer {
		return sq.ILike{col: pattern}
	}))
}

// orderingClauses translates a comma separated ordering parameter into ORDER BY
// clauses. Keys may carry a leading "-" for descending order. Unknown keys are
// ignored; fallback is used when nothing usable remains.
func orderingClauses(raw string, columns map[string]string, fallback string) []string {
	keys := lo.Uniq(lo.FilterMap(strings.Split(raw, ","), func(key string, _ int) (string, bool) {
		key = strings.TrimSpace(key)
		_, ok := columns[strings.TrimPrefix(key, "-")]
		return key, ok
	}))
	if len(keys) == 0 {
		keys = strings.Split(fallback, ",")
	}

	seen := make(map[string]struct{}, len(keys))
	clauses := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, "-")
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		dir := "ASC"
		if strings.HasPrefix(key, "-") {
			dir = "DESC"
		}
		clauses = append(clauses, fmt.Sprintf("%s %s", columns[name], dir))
	}
	return clauses
}

// paginate applies LIMIT and OFFSET for the requested page.
func paginate(b sq.SelectBuilder, page model.Page) sq.SelectBuilder {
	if page.Size <= 0 {
		return b
	}
	return b.Limit(uint64(page.Size)).Offset(uint64(page.Offset()))
}

// numeric binds a decimal as NUMERIC without float conversion.
func numeric(d decimal.Decimal) sq.Sqlizer {
	return sq.Expr("?::text::numeric", d.String())
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse numeric %q: %w", raw, err)
	}
	return d, nil
}

// dayStart truncates t to midnight UTC of the same calendar day.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextDay returns the exclusive upper bound of an inclusive day range.
func nextDay(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// count runs a COUNT(*) query built from b.
func count(ctx context.Context, db querier, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
