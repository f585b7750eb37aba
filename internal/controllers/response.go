package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"civilregistry/internal/apperrors"

	"github.com/gin-gonic/gin"
)

var errPhotoTooLarge = errors.New("photo exceeds the upload size limit")

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateRecord),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrEmailTaken),
		errors.Is(err, apperrors.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnderage),
		errors.Is(err, apperrors.ErrInvalidExpiryWindow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errPhotoTooLarge):
		return http.StatusRequestEntityTooLarge
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, message string, err error) {
	code := statusFor(err)
	body := gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	}
	if code == http.StatusServiceUnavailable {
		body["retryable"] = true
	}
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		body["error"] = "Internal server error"
	}
	c.JSON(code, body)
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request data",
		"error":   err.Error(),
	})
}

func respondOK(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// parseID reads the :id path parameter, answering 400 itself on failure.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid ID",
			"error":   "ID must be a valid positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// readUpload returns the bytes of a multipart file field. A missing field is
// (nil, "", nil) so the validator can report ErrPhotoRequired.
func readUpload(c *gin.Context, field string, maxBytes int64) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, "", errPhotoTooLarge
	}
	data, err := readFileHeader(header)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
