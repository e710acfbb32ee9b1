package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/doctor-dialogue-server/internal/domain"
	"github.com/doctor-dialogue-server/internal/export"
	"github.com/doctor-dialogue-server/internal/speech"
)

// maxImageBytes bounds skin photo uploads.
const maxImageBytes = 10 << 20

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	err := s.deps.Auth.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"username": req.Username})
	case errors.Is(err, domain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if err := s.deps.Auth.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": req.Username})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	entry := s.createSession(c.Request.Context(), req.Username)
	prompt := entry.session.Start(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{
		"session_id": entry.id,
		"prompt":     prompt,
		"state":      entry.session.State(),
	})
}

func (s *Server) handleAnswer(c *gin.Context) {
	entry, ok := s.getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		Text     string `json:"text"`
		Severity int    `json:"severity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if req.Severity >= 1 && req.Severity <= 3 {
		entry.selector.Set(req.Severity)
	}

	reply, err := entry.session.Answer(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrSessionFinished) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process answer"})
		return
	}

	resp := gin.H{
		"prompt": reply.Prompt,
		"state":  reply.State,
		"done":   reply.Done,
	}
	if reply.Prescription != nil {
		resp["prescription"] = reply.Prescription
	}
	if reply.Warning != "" {
		resp["warning"] = reply.Warning
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleImage(c *gin.Context) {
	entry, ok := s.getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	tag, followUp, err := entry.session.AttachImage(c.Request.Context(), data)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		if errors.Is(err, domain.ErrSessionFinished) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detected":  tag,
		"follow_up": followUp,
	})
}

func (s *Server) handleLanguage(c *gin.Context) {
	entry, ok := s.getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}

	code, known := speech.LanguageCode(req.Language)
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     fmt.Sprintf("unsupported language %q", req.Language),
			"languages": speech.LanguageNames(),
		})
		return
	}

	entry.mu.Lock()
	entry.session.SetLanguage(code)
	entry.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"language": req.Language, "code": code})
}

func (s *Server) handleReset(c *gin.Context) {
	entry, ok := s.getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	entry.mu.Lock()
	prompt := entry.session.Reset(c.Request.Context())
	state := entry.session.State()
	entry.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"prompt": prompt, "state": state})
}

func (s *Server) handlePrescription(c *gin.Context) {
	entry, ok := s.getSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	entry.mu.Lock()
	rec, warning, err := entry.session.GeneratePrescription(c.Request.Context())
	entry.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrAgeGroupRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate prescription"})
		return
	}

	resp := gin.H{"prescription": rec}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListPrescriptions(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	list, err := s.deps.Store.ListPrescriptions(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	// rendered is the history-log view selections are made against.
	var rendered strings.Builder
	for _, rec := range list {
		rendered.WriteString(rec.HistoryEntry())
		rendered.WriteString("\n")
	}

	c.JSON(http.StatusOK, gin.H{
		"username":      username,
		"prescriptions": list,
		"rendered":      rendered.String(),
	})
}

func (s *Server) handleExportPrescription(c *gin.Context) {
	username := c.Query("username")
	selection := c.Query("selection")
	if username == "" || selection == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and selection are required"})
		return
	}

	timestamp, err := export.TimestampFromSelection(selection)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := s.deps.Store.GetPrescription(c.Request.Context(), username, timestamp)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prescription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load prescription"})
		return
	}

	doc := export.Render(export.Paginate(rec.Text))
	filename := export.Filename(username, timestamp)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc))
}

func (s *Server) handleDeletePrescription(c *gin.Context) {
	var req struct {
		Username  string `json:"username" binding:"required"`
		Selection string `json:"selection" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and selection are required"})
		return
	}

	timestamp, err := export.TimestampFromSelection(req.Selection)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.deps.Store.DeletePrescription(c.Request.Context(), req.Username, timestamp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prescription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete prescription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": timestamp})
}
