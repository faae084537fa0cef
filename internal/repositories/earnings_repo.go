package repositories

import (
	"database/sql"
	"time"

	intconfig "tripbook/internal/config"
	intdb "tripbook/internal/db"
	"tripbook/internal/ledger"
)

type EarningsRepository struct {
	DB *sql.DB
}

func (r EarningsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListForPeriod returns earnings within [start, end] ordered by earned_at
// then id. An absent earnings table yields an empty list, not an error:
// the mileage export still works for accounts that never imported earnings.
func (r EarningsRepository) ListForPeriod(start, end time.Time) ([]ledger.Earning, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, "earnings") {
		return []ledger.Earning{}, nil
	}

	rows, err := db.Query(`
		SELECT id, COALESCE(platform, ''), amount_pence, earned_at
		FROM earnings
		WHERE earned_at >= ? AND earned_at <= ?
		ORDER BY earned_at ASC, id ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ledger.Earning{}
	for rows.Next() {
		var e ledger.Earning
		if err := rows.Scan(&e.ID, &e.Platform, &e.AmountPence, &e.EarnedAt); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
