package ui

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"racidash/export"
	apperrors "racidash/internal/errors"
	"racidash/web"
)

type cellUpdateRequest struct {
	Category   string `json:"category"`
	Capability string `json:"capability" binding:"required"`
	RoleID     string `json:"role_id" binding:"required"`
	Value      string `json:"value"`
}

type maturityUpdateRequest struct {
	Category   string `json:"category"`
	Capability string `json:"capability" binding:"required"`
	Field      string `json:"field" binding:"required"`
	Value      int    `json:"value"`
}

func (s *Server) handleIndex(c *gin.Context) {
	page, err := web.Assets.ReadFile("static/index.html")
	if err != nil {
		s.logger.Error("[Server] index.html missing from embedded assets: %v", err)
		c.String(http.StatusInternalServerError, "dashboard assets unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleData(c *gin.Context) {
	ds := s.service.Current()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Upload.MaxFileSize)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}

	sheet := c.PostForm("sheet")
	s.logger.Info("[Upload] %s (%d bytes, sheet=%q)", header.Filename, len(data), sheet)

	ds, err := s.service.LoadBytes(c.Request.Context(), data, header.Filename, sheet)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (s *Server) handleExportHTML(c *gin.Context) {
	ds := s.service.Current()
	page, err := export.HTML(ds)
	if err != nil {
		s.renderError(c, err)
		return
	}
	name := fmt.Sprintf("raci_dashboard_%s.html", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleExportPowerBI(c *gin.Context) {
	ds := s.service.Current()
	archive, err := export.KitZip(ds)
	if err != nil {
		s.renderError(c, err)
		return
	}
	name := fmt.Sprintf("raci_powerbi_kit_%s.zip", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/zip", archive)
}

func (s *Server) handleUpdateCell(c *gin.Context) {
	var req cellUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.service.UpdateCell(req.Category, req.Capability, req.RoleID, req.Value); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.service.Current())
}

func (s *Server) handleUpdateMaturity(c *gin.Context) {
	var req maturityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.service.UpdateMaturity(req.Category, req.Capability, req.Field, req.Value); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.service.Current())
}

func (s *Server) handleHistory(c *gin.Context) {
	snaps, err := s.service.History(c.Request.Context(), 20)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snaps, "count": len(snaps)})
}

// renderError maps error codes onto HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsParseError(err):
		status = http.StatusUnprocessableEntity
	case apperrors.GetCode(err) == apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.GetCode(err) == apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.GetCode(err) == apperrors.CodeSourceUnreadable:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("[Server] internal error: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.GetCode(err)})
}
