package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/muhammadolammi/skillmatch/internal/document"
	"github.com/muhammadolammi/skillmatch/internal/skills"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
}

// SkillsResponse lists the active vocabulary
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

type pageData struct {
	Error          string
	JobDescription string
	MaxUploadMB    int64
	Report         *skills.Report
	DownloadURL    template.URL
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.newPage())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleSkills(c *gin.Context) {
	c.JSON(http.StatusOK, SkillsResponse{Skills: s.extractor.Vocabulary()})
}

func (s *Server) handleMatchForm(c *gin.Context) {
	report, err := s.match(c)
	page := s.newPage()
	page.JobDescription = c.PostForm("job_description")
	if err != nil {
		page.Error = err.Error()
		c.HTML(HTTPStatus(err), "index.html", page)
		return
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		page.Error = "failed to encode result"
		c.HTML(http.StatusInternalServerError, "index.html", page)
		return
	}
	page.Report = report
	page.DownloadURL = template.URL("data:application/json;base64," + base64.StdEncoding.EncodeToString(data))
	c.HTML(http.StatusOK, "index.html", page)
}

func (s *Server) handleMatchJSON(c *gin.Context) {
	report, err := s.match(c)
	if err != nil {
		c.JSON(HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// match reads the uploaded resume and the pasted job description and
// compares them. The resume is checked first, matching the order of the form.
func (s *Server) match(c *gin.Context) (*skills.Report, error) {
	log := s.logger.With(zap.String("request_id", c.GetString(requestIDKey)))

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrUploadTooLarge{Limit: s.cfg.MaxUploadBytes}
		}
		return nil, &ErrMissingResume{}
	}
	if s.cfg.MaxUploadBytes > 0 && fileHeader.Size > s.cfg.MaxUploadBytes {
		return nil, &ErrUploadTooLarge{Limit: s.cfg.MaxUploadBytes}
	}

	jobDescription := c.PostForm("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ErrMissingJobDescription{}
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, &ErrResumeUnreadable{Cause: err}
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &ErrResumeUnreadable{Cause: fmt.Errorf("failed to read upload: %w", err)}
	}

	resumeText, err := document.Extract(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		log.Warn("resume extraction failed",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		return nil, &ErrResumeUnreadable{Cause: err}
	}

	report := skills.Analyze(s.extractor, resumeText, jobDescription)
	log.Info("match completed",
		zap.String("filename", fileHeader.Filename),
		zap.Int("resume_skills", len(report.ResumeSkills)),
		zap.Int("job_skills", len(report.JobSkills)),
		zap.Float64("score", report.Score))
	return &report, nil
}

func (s *Server) newPage() pageData {
	return pageData{MaxUploadMB: s.cfg.MaxUploadBytes >> 20}
}
