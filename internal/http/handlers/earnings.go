package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	intconfig "tripbook/internal/config"
	"tripbook/internal/utils"

	"github.com/gin-gonic/gin"
)

type earning struct {
	ID          int64  `json:"id"`
	Platform    string `json:"platform"`
	AmountPence int64  `json:"amountPence"`
	EarnedAt    string `json:"earnedAt"`
}

type earningPayload struct {
	Platform    string `json:"platform" binding:"required"`
	AmountPence int64  `json:"amountPence"`
	EarnedAt    string `json:"earnedAt" binding:"required"` // YYYY-MM-DD
}

// GET /api/earnings?start_date=&end_date=
func GetEarnings(c *gin.Context) {
	where := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(c.Query("start_date")); s != "" {
		day, err := utils.ParseDate(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD", err)
			return
		}
		where = append(where, "earned_at >= ?")
		args = append(args, day)
	}
	if s := strings.TrimSpace(c.Query("end_date")); s != "" {
		day, err := utils.ParseDate(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD", err)
			return
		}
		where = append(where, "earned_at < ?")
		args = append(args, day.AddDate(0, 0, 1))
	}

	rows, err := intconfig.DB.Query(`
		SELECT id, COALESCE(platform, ''), amount_pence, earned_at
		FROM earnings
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY earned_at ASC, id ASC
	`, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list earnings", err)
		return
	}
	defer rows.Close()

	out := []earning{}
	for rows.Next() {
		var (
			e        earning
			earnedAt sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.Platform, &e.AmountPence, &earnedAt); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan earning", err)
			return
		}
		if earnedAt.Valid {
			e.EarnedAt = utils.FormatDate(earnedAt.Time)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list earnings", err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// POST /api/earnings
func CreateEarning(c *gin.Context) {
	var p earningPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	if p.AmountPence < 0 {
		RespondError(c, http.StatusBadRequest, "amountPence must be non-negative", nil)
		return
	}
	earnedAt, err := utils.ParseDate(p.EarnedAt)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "earnedAt must be YYYY-MM-DD", err)
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO earnings (platform, amount_pence, earned_at)
		VALUES (?, ?, ?)
	`, strings.TrimSpace(p.Platform), p.AmountPence, earnedAt)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create earning", err)
		return
	}
	id, _ := res.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DELETE /api/earnings/:id
func DeleteEarning(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM earnings WHERE id = ?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete earning", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "earning not found", sql.ErrNoRows)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
