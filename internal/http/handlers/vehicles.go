package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	intconfig "tripbook/internal/config"
	"tripbook/internal/ledger"

	"github.com/gin-gonic/gin"
)

type vehicle struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	LicensePlate string `json:"licensePlate"`
	VehicleClass string `json:"vehicleClass"`
}

type vehiclePayload struct {
	Name         string `json:"name" binding:"required"`
	LicensePlate string `json:"licensePlate"`
	VehicleClass string `json:"vehicleClass" binding:"required"`
}

func (p vehiclePayload) validate(c *gin.Context) bool {
	if !ledger.Class(p.VehicleClass).IsValid() {
		RespondError(c, http.StatusBadRequest, "vehicleClass must be car, van or motorbike", nil)
		return false
	}
	return true
}

// GET /api/vehicles?q=LK
func GetVehicles(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	query := `
		SELECT id, name, COALESCE(license_plate, ''), vehicle_class
		FROM vehicles
	`
	args := []any{}
	if q != "" {
		query += " WHERE (name LIKE ? OR license_plate LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += " ORDER BY id ASC"

	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list vehicles", err)
		return
	}
	defer rows.Close()

	out := []vehicle{}
	for rows.Next() {
		var v vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.LicensePlate, &v.VehicleClass); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan vehicle", err)
			return
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list vehicles", err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var p vehiclePayload
	if !BindJSONOrError(c, &p) || !p.validate(c) {
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO vehicles (name, license_plate, vehicle_class)
		VALUES (?, ?, ?)
	`, strings.TrimSpace(p.Name), strings.TrimSpace(p.LicensePlate), p.VehicleClass)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create vehicle", err)
		return
	}
	id, _ := res.LastInsertId()

	c.JSON(http.StatusCreated, vehicle{
		ID:           id,
		Name:         strings.TrimSpace(p.Name),
		LicensePlate: strings.TrimSpace(p.LicensePlate),
		VehicleClass: p.VehicleClass,
	})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	var p vehiclePayload
	if !BindJSONOrError(c, &p) || !p.validate(c) {
		return
	}

	res, err := intconfig.DB.Exec(`
		UPDATE vehicles
		SET name = ?, license_plate = ?, vehicle_class = ?
		WHERE id = ?
	`, strings.TrimSpace(p.Name), strings.TrimSpace(p.LicensePlate), p.VehicleClass, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update vehicle", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM vehicles WHERE id = ?`, id).Scan(&exists); err == nil && exists == 0 {
			RespondError(c, http.StatusNotFound, "vehicle not found", sql.ErrNoRows)
			return
		}
	}

	c.JSON(http.StatusOK, vehicle{
		ID:           id,
		Name:         strings.TrimSpace(p.Name),
		LicensePlate: strings.TrimSpace(p.LicensePlate),
		VehicleClass: p.VehicleClass,
	})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	// trips keep their history; the vehicle reference goes NULL
	if _, err := intconfig.DB.Exec(`UPDATE trips SET vehicle_id = NULL WHERE vehicle_id = ?`, id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to detach trips", err)
		return
	}
	res, err := intconfig.DB.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete vehicle", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "vehicle not found", sql.ErrNoRows)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
