package controllers

import (
	"net/http"

	"civilregistry/internal/middleware"
	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

// RejectRequest carries the mandatory rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" example:"Photo does not match the applicant"`
}

// StatusRequest drives the PATCH status endpoints.
type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"approved"`
	Reason string `json:"reason,omitempty"`
}

type BirthController struct {
	births         BirthService
	dispatcher     StatusChangeDispatcher
	maxUploadBytes int64
}

func NewBirthController(births BirthService, dispatcher StatusChangeDispatcher, maxUploadBytes int64) *BirthController {
	return &BirthController{births: births, dispatcher: dispatcher, maxUploadBytes: maxUploadBytes}
}

// Submit godoc
// @Summary Submit a birth certificate
// @Description Multipart form; the photo is fingerprinted for duplicate detection
// @Tags births
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Applicant photo"
// @Param id_number formData string true "ID number"
// @Param full_name formData string true "Full name"
// @Param date_of_birth formData string true "YYYY-MM-DD"
// @Param gender formData string true "Gender"
// @Param date_of_issue formData string true "YYYY-MM-DD"
// @Param date_of_expiry formData string true "YYYY-MM-DD"
// @Success 201 {object} map[string]interface{} "Birth certificate submitted"
// @Failure 409 {object} map[string]interface{} "Duplicate ID number or photo"
// @Failure 422 {object} map[string]interface{} "Underage or invalid expiry"
// @Router /births [post]
func (bc *BirthController) Submit(c *gin.Context) {
	var in models.RecordInput
	if err := c.ShouldBind(&in); err != nil {
		respondBadRequest(c, err)
		return
	}
	photo, _, err := readUpload(c, "photo", bc.maxUploadBytes)
	if err != nil {
		respondError(c, "Invalid photo upload", err)
		return
	}

	record, err := bc.births.Submit(c.Request.Context(), in, photo)
	if err != nil {
		respondError(c, "Failed to submit birth certificate", err)
		return
	}
	respondOK(c, http.StatusCreated, "Birth certificate submitted", record)
}

// List godoc
// @Summary List birth certificates
// @Tags births
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved/verified or rejected"
// @Success 200 {object} map[string]interface{} "Birth certificates retrieved successfully"
// @Router /births [get]
func (bc *BirthController) List(c *gin.Context) {
	var status models.RecordStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParseStatus(raw)
		if err != nil {
			respondError(c, "Invalid status filter", err)
			return
		}
		status = parsed
	}
	bc.list(c, status)
}

func (bc *BirthController) ListPending(c *gin.Context)  { bc.list(c, models.StatusPending) }
func (bc *BirthController) ListVerified(c *gin.Context) { bc.list(c, models.StatusApproved) }
func (bc *BirthController) ListRejected(c *gin.Context) { bc.list(c, models.StatusRejected) }

func (bc *BirthController) list(c *gin.Context, status models.RecordStatus) {
	records, err := bc.births.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, "Failed to retrieve birth certificates", err)
		return
	}
	respondOK(c, http.StatusOK, "Birth certificates retrieved successfully", records)
}

// Get godoc
// @Summary Get a birth certificate
// @Tags births
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]interface{} "Birth certificate retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Record not found"
// @Router /births/{id} [get]
func (bc *BirthController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	record, err := bc.births.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Birth certificate not found", err)
		return
	}
	respondOK(c, http.StatusOK, "Birth certificate retrieved successfully", record)
}

// Approve godoc
// @Summary Approve a pending birth certificate
// @Tags births
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} map[string]interface{} "Birth certificate approved"
// @Failure 404 {object} map[string]interface{} "Record not found"
// @Failure 409 {object} map[string]interface{} "Record is not pending"
// @Router /births/approve/{id} [post]
func (bc *BirthController) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	record, err := bc.births.Approve(c.Request.Context(), id)
	bc.finishTransition(c, "Birth certificate approved", record, err)
}

// Reject godoc
// @Summary Reject a pending birth certificate
// @Tags births
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param body body RejectRequest true "Rejection reason"
// @Success 200 {object} map[string]interface{} "Birth certificate rejected"
// @Failure 400 {object} map[string]interface{} "A rejection reason is required"
// @Router /births/reject/{id} [post]
func (bc *BirthController) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	record, err := bc.births.Reject(c.Request.Context(), id, req.Reason)
	bc.finishTransition(c, "Birth certificate rejected", record, err)
}

// SetStatus godoc
// @Summary Approve or reject through a status value
// @Tags births
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param body body StatusRequest true "approved, verified or rejected"
// @Success 200 {object} map[string]interface{} "Status updated"
// @Router /births/{id}/status [patch]
func (bc *BirthController) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	record, err := bc.births.SetStatus(c.Request.Context(), id, req.Status, req.Reason)
	bc.finishTransition(c, "Status updated", record, err)
}

func (bc *BirthController) finishTransition(c *gin.Context, message string, record *models.BirthRecord, err error) {
	if err != nil {
		respondError(c, "Failed to update birth certificate status", err)
		return
	}
	if bc.dispatcher != nil {
		bc.dispatcher.StatusChanged(models.KindBirth, record.CivilRecord, middleware.CurrentUserID(c))
	}
	respondOK(c, http.StatusOK, message, record)
}
