package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "tripbook/internal/config"
	intdb "tripbook/internal/db"
	"tripbook/internal/ledger"
)

type TripsRepository struct {
	DB *sql.DB
}

func (r TripsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListForExport returns trips within [start, end] with their vehicle joined,
// ordered by started_at then id. The ledger contract requires ascending
// start-time order, so it is enforced here at the boundary rather than
// assumed. classification filters to business/personal when non-empty.
//
// platform and address columns are optional; older schemas without them
// still export.
func (r TripsRepository) ListForExport(start, end time.Time, classification string) ([]ledger.TripRecord, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, "trips") {
		return []ledger.TripRecord{}, nil
	}

	hasPlatform := intdb.HasColumn(db, "trips", "platform")
	hasFrom := intdb.HasColumn(db, "trips", "from_address")
	hasTo := intdb.HasColumn(db, "trips", "to_address")

	cols := []string{
		"t.id",
		"COALESCE(t.vehicle_id, 0)",
		"COALESCE(v.name, '')",
		"COALESCE(v.vehicle_class, '')",
		"t.classification",
		"t.distance_miles",
		"t.started_at",
		"t.ended_at",
	}
	if hasPlatform {
		cols = append(cols, "COALESCE(t.platform, '')")
	} else {
		cols = append(cols, "''")
	}
	if hasFrom {
		cols = append(cols, "COALESCE(t.from_address, '')")
	} else {
		cols = append(cols, "''")
	}
	if hasTo {
		cols = append(cols, "COALESCE(t.to_address, '')")
	} else {
		cols = append(cols, "''")
	}

	where := []string{"t.started_at >= ?", "t.started_at <= ?"}
	args := []any{start, end}
	if c := strings.TrimSpace(classification); c != "" {
		where = append(where, "t.classification = ?")
		args = append(args, c)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM trips t
		LEFT JOIN vehicles v ON v.id = t.vehicle_id
		WHERE %s
		ORDER BY t.started_at ASC, t.id ASC
	`, strings.Join(cols, ", "), strings.Join(where, " AND "))

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ledger.TripRecord{}
	for rows.Next() {
		var (
			rec     ledger.TripRecord
			class   string
			endedAt sql.NullTime
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.VehicleID,
			&rec.VehicleName,
			&class,
			&rec.Classification,
			&rec.DistanceMiles,
			&rec.StartedAt,
			&endedAt,
			&rec.Platform,
			&rec.FromAddress,
			&rec.ToAddress,
		); err != nil {
			return out, err
		}
		rec.VehicleClass = ledger.Class(class)
		if endedAt.Valid {
			t := endedAt.Time
			rec.EndedAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
