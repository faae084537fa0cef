package handlers

import (
	"database/sql"
	"math"
	"net/http"
	"strconv"
	"strings"

	intconfig "tripbook/internal/config"
	intdb "tripbook/internal/db"
	"tripbook/internal/ledger"
	"tripbook/internal/utils"

	"github.com/gin-gonic/gin"
)

type trip struct {
	ID             int64   `json:"id"`
	VehicleID      *int64  `json:"vehicleId,omitempty"`
	Classification string  `json:"classification"`
	DistanceMiles  float64 `json:"distanceMiles"`
	StartedAt      string  `json:"startedAt"`
	EndedAt        string  `json:"endedAt,omitempty"`
	Platform       string  `json:"platform,omitempty"`
	FromAddress    string  `json:"fromAddress,omitempty"`
	ToAddress      string  `json:"toAddress,omitempty"`
}

type tripPayload struct {
	VehicleID      *int64  `json:"vehicleId"`
	Classification string  `json:"classification" binding:"required"`
	DistanceMiles  float64 `json:"distanceMiles"`
	StartedAt      string  `json:"startedAt" binding:"required"` // YYYY-MM-DD HH:MM:SS
	EndedAt        string  `json:"endedAt"`
	Platform       string  `json:"platform"`
	FromAddress    string  `json:"fromAddress"`
	ToAddress      string  `json:"toAddress"`
}

// validate rejects bad distances at write time: a stored bad distance would
// poison every ledger run over the period containing it.
func (p tripPayload) validate(c *gin.Context) (startedAt, endedAt any, ok bool) {
	if p.Classification != ledger.ClassificationBusiness && p.Classification != ledger.ClassificationPersonal {
		RespondError(c, http.StatusBadRequest, "classification must be business or personal", nil)
		return nil, nil, false
	}
	if p.DistanceMiles < 0 || math.IsNaN(p.DistanceMiles) || math.IsInf(p.DistanceMiles, 0) {
		RespondError(c, http.StatusBadRequest, "distanceMiles must be a non-negative number", nil)
		return nil, nil, false
	}
	start, err := utils.ParseDateTime(p.StartedAt)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "startedAt must be YYYY-MM-DD HH:MM:SS", err)
		return nil, nil, false
	}
	startedAt = start
	if strings.TrimSpace(p.EndedAt) != "" {
		end, err := utils.ParseDateTime(p.EndedAt)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "endedAt must be YYYY-MM-DD HH:MM:SS", err)
			return nil, nil, false
		}
		if end.Before(start) {
			RespondError(c, http.StatusBadRequest, "endedAt is before startedAt", nil)
			return nil, nil, false
		}
		endedAt = end
	}
	return startedAt, endedAt, true
}

func (p tripPayload) vehicleIDArg() any {
	if p.VehicleID == nil || *p.VehicleID == 0 {
		return nil
	}
	return *p.VehicleID
}

// GET /api/trips?start_date=2024-04-06&end_date=2025-04-05&classification=business
func GetTrips(c *gin.Context) {
	where := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(c.Query("start_date")); s != "" {
		day, err := utils.ParseDate(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD", err)
			return
		}
		where = append(where, "started_at >= ?")
		args = append(args, day)
	}
	if s := strings.TrimSpace(c.Query("end_date")); s != "" {
		day, err := utils.ParseDate(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD", err)
			return
		}
		where = append(where, "started_at < ?")
		args = append(args, day.AddDate(0, 0, 1))
	}
	if cl := strings.TrimSpace(c.Query("classification")); cl != "" {
		where = append(where, "classification = ?")
		args = append(args, cl)
	}

	rows, err := intconfig.DB.Query(`
		SELECT id, vehicle_id, classification, distance_miles, started_at, ended_at,
		       COALESCE(platform, ''), COALESCE(from_address, ''), COALESCE(to_address, '')
		FROM trips
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY started_at ASC, id ASC
	`, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list trips", err)
		return
	}
	defer rows.Close()

	out := []trip{}
	for rows.Next() {
		var (
			t         trip
			vehicleID sql.NullInt64
			startedAt sql.NullTime
			endedAt   sql.NullTime
		)
		if err := rows.Scan(&t.ID, &vehicleID, &t.Classification, &t.DistanceMiles,
			&startedAt, &endedAt, &t.Platform, &t.FromAddress, &t.ToAddress); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan trip", err)
			return
		}
		if vehicleID.Valid {
			id := vehicleID.Int64
			t.VehicleID = &id
		}
		if startedAt.Valid {
			t.StartedAt = utils.FormatDateTime(startedAt.Time)
		}
		if endedAt.Valid {
			t.EndedAt = utils.FormatDateTime(endedAt.Time)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list trips", err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var p tripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	startedAt, endedAt, ok := p.validate(c)
	if !ok {
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO trips (vehicle_id, classification, distance_miles, started_at, ended_at, platform, from_address, to_address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.vehicleIDArg(), p.Classification, p.DistanceMiles, startedAt, endedAt,
		intdb.NullIfEmpty(strings.TrimSpace(p.Platform)),
		intdb.NullIfEmpty(strings.TrimSpace(p.FromAddress)),
		intdb.NullIfEmpty(strings.TrimSpace(p.ToAddress)))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create trip", err)
		return
	}
	id, _ := res.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	var p tripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	startedAt, endedAt, ok := p.validate(c)
	if !ok {
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE trips
		SET vehicle_id = ?, classification = ?, distance_miles = ?, started_at = ?, ended_at = ?,
		    platform = ?, from_address = ?, to_address = ?
		WHERE id = ?
	`, p.vehicleIDArg(), p.Classification, p.DistanceMiles, startedAt, endedAt,
		intdb.NullIfEmpty(strings.TrimSpace(p.Platform)),
		intdb.NullIfEmpty(strings.TrimSpace(p.FromAddress)),
		intdb.NullIfEmpty(strings.TrimSpace(p.ToAddress)), id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update trip", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM trips WHERE id = ?`, id).Scan(&exists); err == nil && exists == 0 {
			RespondError(c, http.StatusNotFound, "trip not found", sql.ErrNoRows)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete trip", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "trip not found", sql.ErrNoRows)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
