package controllers

import (
	"net/http"

	"civilregistry/internal/models"

	"github.com/gin-gonic/gin"
)

// CitizenController serves read-only views that merge ID cards and birth
// certificates into one list.
type CitizenController struct {
	births BirthService
	ids    IDCardService
}

func NewCitizenController(births BirthService, ids IDCardService) *CitizenController {
	return &CitizenController{births: births, ids: ids}
}

func birthCitizens(records []models.BirthRecord) []models.Citizen {
	out := make([]models.Citizen, 0, len(records))
	for _, r := range records {
		out = append(out, models.Citizen{CivilRecord: r.CivilRecord, Type: models.KindBirth})
	}
	return out
}

func idCardCitizens(records []models.IDCardRecord) []models.Citizen {
	out := make([]models.Citizen, 0, len(records))
	for _, r := range records {
		out = append(out, models.Citizen{CivilRecord: r.CivilRecord, PhotoPath: r.PhotoPath, Type: models.KindIDCard})
	}
	return out
}

// All godoc
// @Summary All citizen records
// @Description ID cards followed by birth certificates, any status
// @Tags citizens
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Citizen records retrieved successfully"
// @Router /citizens [get]
func (cc *CitizenController) All(c *gin.Context) {
	ids, err := cc.ids.List(c.Request.Context(), "")
	if err != nil {
		respondError(c, "Failed to fetch citizen records", err)
		return
	}
	births, err := cc.births.List(c.Request.Context(), "")
	if err != nil {
		respondError(c, "Failed to fetch citizen records", err)
		return
	}
	respondOK(c, http.StatusOK, "Citizen records retrieved successfully", append(idCardCitizens(ids), birthCitizens(births)...))
}

// VerifiedIDs godoc
// @Summary Approved ID cards
// @Tags citizens
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Verified ID cards retrieved successfully"
// @Router /citizens/verified-ids [get]
func (cc *CitizenController) VerifiedIDs(c *gin.Context) {
	ids, err := cc.ids.List(c.Request.Context(), models.StatusApproved)
	if err != nil {
		respondError(c, "Failed to fetch verified ID cards", err)
		return
	}
	respondOK(c, http.StatusOK, "Verified ID cards retrieved successfully", idCardCitizens(ids))
}

// VerifiedBirths godoc
// @Summary Verified birth certificates
// @Tags citizens
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Verified birth records retrieved successfully"
// @Router /citizens/verified-births [get]
func (cc *CitizenController) VerifiedBirths(c *gin.Context) {
	births, err := cc.births.List(c.Request.Context(), models.StatusApproved)
	if err != nil {
		respondError(c, "Failed to fetch verified birth records", err)
		return
	}
	respondOK(c, http.StatusOK, "Verified birth records retrieved successfully", birthCitizens(births))
}
