package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vocalis/internal/service"
)

// SessionHandler handles collection-session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// sessionID parses the :id path parameter. Returns false if invalid (error
// response already written).
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

// Start handles POST /api/v1/sessions
// @Summary Start a collection session
// @Description Open a conversation for one document type and get the opening prompt
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body service.StartSessionInput true "Document type"
// @Success 201 {object} Response{data=service.TurnOutput} "Session started"
// @Failure 400 {object} ErrorResponseBody "Unknown document type"
// @Security BearerAuth
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	var input service.StartSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.sessionService.Start(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, out)
}

// SubmitTurn handles POST /api/v1/sessions/:id/turns
// @Summary Submit one dictated utterance
// @Description Extract fields from the utterance, fold them into the record and get the next prompt
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body service.SubmitTurnInput true "Utterance"
// @Success 200 {object} Response{data=service.TurnOutput} "Turn processed"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id}/turns [post]
func (h *SessionHandler) SubmitTurn(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var input service.SubmitTurnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.sessionService.SubmitTurn(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// Get handles GET /api/v1/sessions/:id
// @Summary Get session state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=service.SessionView} "Session state"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// SetField handles PATCH /api/v1/sessions/:id/record
// @Summary Edit one record field
// @Description Set a field to an explicit value; an empty value blanks the field
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body service.SetFieldInput true "Field and value"
// @Success 200 {object} Response{data=service.SessionView} "Updated session state"
// @Failure 400 {object} ErrorResponseBody "Unknown field"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id}/record [patch]
func (h *SessionHandler) SetField(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var input service.SetFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.sessionService.SetField(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Export handles POST /api/v1/sessions/:id/export
// @Summary Export the final document
// @Description Render the record as a labelled text document; fails while critical fields are missing
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=service.ExportOutput} "Rendered document"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Failure 409 {object} ErrorResponseBody "Record incomplete"
// @Security BearerAuth
// @Router /sessions/{id}/export [post]
func (h *SessionHandler) Export(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	out, err := h.sessionService.Export(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// Discard handles DELETE /api/v1/sessions/:id
// @Summary Discard a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response "Session discarded"
// @Failure 404 {object} ErrorResponseBody "Session not found"
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Discard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.sessionService.Discard(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "session discarded"})
}
