package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
	"github.com/bookkeeping-app/bookkeeping_app/internal/middleware"
)

type contactHandler struct {
	contactService portssvc.ContactSvc
}

func newContactHandler(cs portssvc.ContactSvc) *contactHandler {
	return &contactHandler{contactService: cs}
}

func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvc) {
	h := newContactHandler(contactService)

	contactGroup := rg.Group("/contacts")
	{
		contactGroup.POST("", h.createContact)
		contactGroup.GET("", h.listContacts)
		contactGroup.GET("/:contact_id", h.getContact)
		contactGroup.DELETE("/:contact_id", h.deleteContact)
	}
}

func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create contact", slog.String("error", err.Error()))
		respondWithError(c, err, "Contact not found")
		return
	}

	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

func (h *contactHandler) listContacts(c *gin.Context) {
	contacts, err := h.contactService.ListContacts(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Contacts not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": dto.ToListContactsResponse(contacts)})
}

func (h *contactHandler) getContact(c *gin.Context) {
	contactID := c.Param("contact_id")

	contact, err := h.contactService.GetContactByID(c.Request.Context(), contactID)
	if err != nil {
		respondWithError(c, err, "Contact not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

func (h *contactHandler) deleteContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contactID := c.Param("contact_id")

	if err := h.contactService.DeleteContact(c.Request.Context(), contactID); err != nil {
		logger.Warn("Failed to delete contact", slog.String("contact_id", contactID), slog.String("error", err.Error()))
		respondWithError(c, err, "Contact not found")
		return
	}

	c.Status(http.StatusNoContent)
}
