package chat

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"insight-chat/internal/attachment"
	"insight-chat/internal/render"
	"insight-chat/internal/shared/server/respond"
	"insight-chat/internal/theme"
	"insight-chat/internal/transcript"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the orchestrator and its collaborators.
type Handler struct {
	Svc      *Service
	Selector *attachment.Selector
	Themes   *theme.Manager
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, selector *attachment.Selector, themes *theme.Manager) *Handler {
	return &Handler{Svc: svc, Selector: selector, Themes: themes}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat/messages", h.submit)
	rg.GET("/chat/messages", h.list)
	rg.GET("/chat/messages/:id/facets", h.facets)
	rg.GET("/chat/messages/:id/export", h.export)
	rg.POST("/chat/attachment", h.attach)
	rg.GET("/chat/attachment", h.attachmentInfo)
	rg.DELETE("/chat/attachment", h.detach)
	rg.GET("/chat/prompts", h.prompts)
	rg.GET("/chat/theme", h.currentTheme)
	rg.POST("/chat/theme/toggle", h.toggleTheme)
}

func (h *Handler) submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	query := strings.TrimSpace(c.PostForm("query"))
	c.Set("queryLen", len(query))

	// An inline file replaces the held attachment before dispatch, matching
	// select-then-send in one round trip.
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}
		defer file.Close()
		if _, err := h.Selector.Select(c.Request.Context(), fileHeader.Filename, file); err != nil {
			h.attachmentError(c, err)
			return
		}
	}
	_, held := h.Selector.Held()
	c.Set("hasAttachment", held)

	entry, err := h.Svc.Submit(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyQuery):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrBusy):
			respond.Error(c, http.StatusConflict, "busy", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit query", nil)
		}
		return
	}

	c.Set("messageId", entry.ID)
	respond.Created(c, toMessageResponse(entry))
}

func (h *Handler) list(c *gin.Context) {
	entries := h.Svc.Transcript.All()
	messages := make([]MessageResponse, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, toMessageResponse(e))
	}
	respond.OK(c, gin.H{"messages": messages, "busy": h.Svc.Busy()})
}

func (h *Handler) facets(c *gin.Context) {
	entry, ok := h.payloadEntry(c)
	if !ok {
		return
	}

	page := 0
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}
	sortField := c.Query("sort")
	dir := render.Asc
	if strings.EqualFold(c.Query("dir"), string(render.Desc)) {
		dir = render.Desc
	}

	respond.OK(c, FacetsResponse{
		MessageID: entry.ID,
		Narrative: render.Narrative(entry.Payload),
		Chart:     render.BuildChart(entry.Payload),
		Table:     render.BuildTable(entry.Payload.TableData, page, sortField, dir),
	})
}

func (h *Handler) export(c *gin.Context) {
	entry, ok := h.payloadEntry(c)
	if !ok {
		return
	}

	csv := render.ExportCSV(entry.Payload.TableData)
	c.Header("Content-Disposition", `attachment; filename="`+render.ExportFileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func (h *Handler) attach(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	held, err := h.Selector.Select(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		h.attachmentError(c, err)
		return
	}
	respond.Created(c, toAttachmentResponse(held))
}

func (h *Handler) attachmentInfo(c *gin.Context) {
	held, ok := h.Selector.Held()
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "no attachment held", nil)
		return
	}
	respond.OK(c, toAttachmentResponse(held))
}

func (h *Handler) detach(c *gin.Context) {
	h.Selector.Clear()
	c.Status(http.StatusNoContent)
}

func (h *Handler) prompts(c *gin.Context) {
	respond.OK(c, gin.H{"prompts": QuickPrompts})
}

func (h *Handler) currentTheme(c *gin.Context) {
	respond.OK(c, gin.H{"theme": h.Themes.Current()})
}

func (h *Handler) toggleTheme(c *gin.Context) {
	respond.OK(c, gin.H{"theme": h.Themes.Toggle()})
}

// payloadEntry resolves the :id path param to an assistant entry that carries
// an analysis payload, replying with the appropriate error otherwise.
func (h *Handler) payloadEntry(c *gin.Context) (transcript.Entry, bool) {
	entry, err := h.Svc.Transcript.Get(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "message not found", nil)
		return transcript.Entry{}, false
	}
	if entry.Payload == nil {
		respond.Error(c, http.StatusNotFound, "no_payload", "message has no analysis payload", nil)
		return transcript.Entry{}, false
	}
	return entry, true
}

func (h *Handler) attachmentError(c *gin.Context, err error) {
	if errors.Is(err, attachment.ErrUnsupportedFile) {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to stage attachment", nil)
}

func toAttachmentResponse(held attachment.Held) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: held.ID,
		FileName:     held.Name,
		SizeBytes:    held.SizeBytes,
	}
}
