package controllers

import (
	"net/http"

	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

type DeathController struct {
	deaths DeathService
}

func NewDeathController(deaths DeathService) *DeathController {
	return &DeathController{deaths: deaths}
}

// List godoc
// @Summary List death records
// @Tags deaths
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Death records retrieved successfully"
// @Router /deaths [get]
func (dc *DeathController) List(c *gin.Context) {
	records, err := dc.deaths.List(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve death records", err)
		return
	}
	respondOK(c, http.StatusOK, "Death records retrieved successfully", records)
}

// Today godoc
// @Summary Deaths recorded for today
// @Tags deaths
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Today's death records retrieved successfully"
// @Router /deaths/today [get]
func (dc *DeathController) Today(c *gin.Context) {
	records, err := dc.deaths.Today(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to fetch today's death records", err)
		return
	}
	respondOK(c, http.StatusOK, "Today's death records retrieved successfully", records)
}

// Get godoc
// @Summary Get a death record
// @Tags deaths
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]interface{} "Death record retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Record not found"
// @Router /deaths/{id} [get]
func (dc *DeathController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	record, err := dc.deaths.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Death record not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Death record retrieved successfully", record)
}

// Create godoc
// @Summary Create a death record
// @Tags deaths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param record body models.DeathRecord true "Death record"
// @Success 201 {object} map[string]interface{} "Death record created successfully"
// @Failure 409 {object} map[string]interface{} "Serial number already exists"
// @Router /deaths [post]
func (dc *DeathController) Create(c *gin.Context) {
	var record models.DeathRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := dc.deaths.Create(c.Request.Context(), &record); err != nil {
		respondError(c, "Failed to create death record", err)
		return
	}
	respondOK(c, http.StatusCreated, "Death record created successfully", record)
}

// Update godoc
// @Summary Update a death record
// @Tags deaths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param record body models.DeathRecord true "Death record"
// @Success 200 {object} map[string]interface{} "Death record updated successfully"
// @Failure 409 {object} map[string]interface{} "Serial number already exists"
// @Router /deaths/{id} [put]
func (dc *DeathController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in models.DeathRecord
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}
	record, err := dc.deaths.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, "Failed to update death record", err)
		return
	}
	respondOK(c, http.StatusOK, "Death record updated successfully", record)
}

// Delete godoc
// @Summary Delete a death record
// @Tags deaths
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]interface{} "Death record deleted successfully"
// @Router /deaths/{id} [delete]
func (dc *DeathController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := dc.deaths.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete death record", err)
		return
	}
	respondOK(c, http.StatusOK, "Death record deleted successfully", nil)
}
