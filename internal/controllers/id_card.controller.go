package controllers

import (
	"net/http"

	"civilregistry/internal/middleware"
	"civilregistry/internal/models"
	"civilregistry/internal/services"

	"github.com/gin-gonic/gin"
)

type IDCardController struct {
	ids            IDCardService
	dispatcher     StatusChangeDispatcher
	maxUploadBytes int64
}

func NewIDCardController(ids IDCardService, dispatcher StatusChangeDispatcher, maxUploadBytes int64) *IDCardController {
	return &IDCardController{ids: ids, dispatcher: dispatcher, maxUploadBytes: maxUploadBytes}
}

// Submit godoc
// @Summary Submit an ID card application
// @Tags ids
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photoFile formData file true "Applicant photo"
// @Param id_number formData string true "ID number"
// @Param full_name formData string true "Full name"
// @Success 201 {object} map[string]interface{} "ID card application submitted"
// @Failure 409 {object} map[string]interface{} "Duplicate ID number or photo"
// @Router /ids [post]
func (ic *IDCardController) Submit(c *gin.Context) {
	var in models.RecordInput
	if err := c.ShouldBind(&in); err != nil {
		respondBadRequest(c, err)
		return
	}
	data, name, err := readUpload(c, "photoFile", ic.maxUploadBytes)
	if err != nil {
		respondError(c, "Invalid photo upload", err)
		return
	}

	record, err := ic.ids.Submit(c.Request.Context(), in, services.Photo{Data: data, Name: name})
	if err != nil {
		respondError(c, "Failed to submit ID card application", err)
		return
	}
	respondOK(c, http.StatusCreated, "ID card application submitted", record)
}

// List godoc
// @Summary List ID card applications
// @Tags ids
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} map[string]interface{} "ID cards retrieved successfully"
// @Router /ids [get]
func (ic *IDCardController) List(c *gin.Context) {
	var status models.RecordStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParseStatus(raw)
		if err != nil {
			respondError(c, "Invalid status filter", err)
			return
		}
		status = parsed
	}
	ic.list(c, status)
}

func (ic *IDCardController) ListPending(c *gin.Context)  { ic.list(c, models.StatusPending) }
func (ic *IDCardController) ListVerified(c *gin.Context) { ic.list(c, models.StatusApproved) }
func (ic *IDCardController) ListRejected(c *gin.Context) { ic.list(c, models.StatusRejected) }

func (ic *IDCardController) list(c *gin.Context, status models.RecordStatus) {
	records, err := ic.ids.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, "Failed to retrieve ID cards", err)
		return
	}
	respondOK(c, http.StatusOK, "ID cards retrieved successfully", records)
}

// Get godoc
// @Summary Get an ID card application
// @Tags ids
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]interface{} "ID card retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Record not found"
// @Router /ids/{id} [get]
func (ic *IDCardController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	record, err := ic.ids.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ID card not found", err)
		return
	}
	respondOK(c, http.StatusOK, "ID card retrieved successfully", record)
}

// Update godoc
// @Summary Update an ID card application
// @Description Status cannot be changed here; use PATCH /ids/{id}/status
// @Tags ids
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param photoFile formData file false "Replacement photo"
// @Success 200 {object} map[string]interface{} "ID card updated successfully"
// @Router /ids/{id} [put]
func (ic *IDCardController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in models.RecordInput
	if err := c.ShouldBind(&in); err != nil {
		respondBadRequest(c, err)
		return
	}
	data, name, err := readUpload(c, "photoFile", ic.maxUploadBytes)
	if err != nil {
		respondError(c, "Invalid photo upload", err)
		return
	}
	var photo *services.Photo
	if len(data) > 0 {
		photo = &services.Photo{Data: data, Name: name}
	}

	record, err := ic.ids.Update(c.Request.Context(), id, in, photo)
	if err != nil {
		respondError(c, "Failed to update ID card", err)
		return
	}
	respondOK(c, http.StatusOK, "ID card updated successfully", record)
}

// Delete godoc
// @Summary Delete an ID card application
// @Tags ids
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]interface{} "ID card deleted successfully"
// @Router /ids/{id} [delete]
func (ic *IDCardController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ic.ids.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete ID card", err)
		return
	}
	respondOK(c, http.StatusOK, "ID card deleted successfully", nil)
}

// SetStatus godoc
// @Summary Approve or reject an ID card application
// @Tags ids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param body body StatusRequest true "approved or rejected"
// @Success 200 {object} map[string]interface{} "Status updated"
// @Failure 409 {object} map[string]interface{} "Record is not pending"
// @Router /ids/{id}/status [patch]
func (ic *IDCardController) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	record, err := ic.ids.SetStatus(c.Request.Context(), id, req.Status, req.Reason)
	if err != nil {
		respondError(c, "Failed to update ID card status", err)
		return
	}
	if ic.dispatcher != nil {
		ic.dispatcher.StatusChanged(models.KindIDCard, record.CivilRecord, middleware.CurrentUserID(c))
	}
	respondOK(c, http.StatusOK, "Status updated", record)
}
