package handler

import (
	"net/http"
	"strconv"

	"github.com/avtomaktab/avtotest-backend/internal/model"
	"github.com/avtomaktab/avtotest-backend/internal/response"
	"github.com/avtomaktab/avtotest-backend/internal/service"
	"github.com/avtomaktab/avtotest-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles contact form endpoints.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit godoc
// POST /api/v1/contact
// Public endpoint behind the rate limiter.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.CreateContactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

// List godoc
// GET /api/v1/admin/contacts?status=NEW&page=1&per_page=10
func (h *ContactHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	var status *model.ContactStatus
	if raw := c.Query("status"); raw != "" {
		s := model.ContactStatus(raw)
		if s != model.ContactStatusNew && s != model.ContactStatusReviewed {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		status = &s
	}

	messages, pagination, err := h.contactService.ListMessages(c.Request.Context(), status, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, messages, pagination)
}

// UpdateStatus godoc
// PATCH /api/v1/admin/contacts/:id/status
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateContactStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	found, err := h.contactService.UpdateStatus(c.Request.Context(), id, model.ContactStatus(req.Status))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !found {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Delete godoc
// DELETE /api/v1/admin/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
