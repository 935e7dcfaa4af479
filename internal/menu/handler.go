package menu

import (
	"errors"
	"io"
	"net/http"

	"github.com/siva9346/formating-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

// rejections are answered with 400 and a fixed message
var rejections = []struct {
	err     error
	message string
}{
	{ErrMissingFile, "Missing file"},
	{ErrFileType, "Only .txt files are allowed"},
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Upload a chat export (multipart field "file")
// --------------------------------------------------
func (h *Handler) Process(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.fail(c, ErrMissingFile)
		return
	}

	if err := ValidateFileExtension(header.Filename); err != nil {
		h.fail(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.fail(c, err)
		return
	}

	count, err := h.service.ProcessUpload(
		c.Request.Context(),
		header.Filename,
		string(content),
	)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ProcessResult{OK: true, Count: count})
}

// --------------------------------------------------
// JSON listing
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	records, err := h.service.ListMenuItems(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// --------------------------------------------------
// HTML pages
// --------------------------------------------------
func (h *Handler) UploadPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *Handler) MenuPage(c *gin.Context) {
	records, err := h.service.ListMenuItems(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "list menu items failed", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": err.Error()})
		return
	}

	c.HTML(http.StatusOK, "menu.html", gin.H{"Items": records})
}

func (h *Handler) fail(c *gin.Context, err error) {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": r.message})
			return
		}
	}

	msg := err.Error()
	if msg == "" {
		msg = "Unknown error"
	}

	logger.Error(c.Request.Context(), "request failed", err, "path", c.FullPath())

	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
