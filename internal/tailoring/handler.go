package tailoring

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/extract"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/resume"
	"resume-tailor/internal/scrape"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Scraper fetches a job posting. *scrape.Service satisfies it.
type Scraper interface {
	Scrape(ctx context.Context, pageURL, token string) (scrape.Result, error)
}

// Handler wires HTTP handlers to the tailoring service.
type Handler struct {
	Svc            *Service
	Scraper        Scraper
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, scraper Scraper, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, Scraper: scraper, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches tailoring routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tailor", h.tailor)
	rg.POST("/answer-questions", h.answerQuestions)
	rg.POST("/download-pdf", h.downloadPDF)
	rg.POST("/scrape-jd", h.scrapeJD)
}

func (h *Handler) tailor(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respond.Failure(c, bodyError(err, h.MaxUploadBytes))
		return
	}

	provider, err := llm.ParseProvider(c.PostForm("provider"))
	if err != nil {
		respond.Failure(c, err)
		return
	}
	c.Set("provider", string(provider))

	ctx := c.Request.Context()
	instructions, err := h.textFromUploadOrField(ctx, c, "prompt_file", "prompt")
	if err != nil {
		respond.Failure(c, err)
		return
	}
	resumeText, err := h.textFromUploadOrField(ctx, c, "resume_file", "resume_text")
	if err != nil {
		respond.Failure(c, err)
		return
	}

	result, err := h.Svc.Tailor(ctx, TailorInput{
		Provider:       provider,
		Credential:     c.PostForm("api_key"),
		JobDescription: c.PostForm("jd"),
		ResumeText:     resumeText,
		Instructions:   instructions,
		JobURL:         c.PostForm("job_url"),
		ClientID:       middleware.ClientIDFromContext(c),
	})
	if err != nil {
		respond.Failure(c, err)
		return
	}

	respond.OK(c, TailorResponse{
		Success:        true,
		Data:           result.Resume,
		Job:            result.Job,
		TrackerEntryID: result.TrackerEntryID,
	})
}

// textFromUploadOrField prefers an uploaded file over the pasted text field.
func (h *Handler) textFromUploadOrField(ctx context.Context, c *gin.Context, fileField, textField string) (string, error) {
	fh, err := c.FormFile(fileField)
	if err != nil || fh == nil || fh.Filename == "" {
		return strings.TrimSpace(c.PostForm(textField)), nil
	}
	data, err := readUpload(fh)
	if err != nil {
		return "", apperr.Validation(fmt.Sprintf("unable to read %s", fileField))
	}
	return extract.Normalize(ctx, data, fh.Filename)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) answerQuestions(c *gin.Context) {
	var req answersRequest
	if err := h.bindJSON(c, &req, "No data provided."); err != nil {
		respond.Failure(c, err)
		return
	}
	provider, err := llm.ParseProvider(req.Provider)
	if err != nil {
		respond.Failure(c, err)
		return
	}
	c.Set("provider", string(provider))

	questions, err := questionsText(req.Questions)
	if err != nil {
		respond.Failure(c, err)
		return
	}

	answers, err := h.Svc.AnswerQuestions(c.Request.Context(), AnswersInput{
		Provider:       provider,
		Credential:     req.APIKey,
		Questions:      questions,
		JobDescription: req.JD,
		Resume:         req.Resume,
	})
	if err != nil {
		respond.Failure(c, err)
		return
	}
	respond.OK(c, AnswersResponse{Success: true, Answers: answers})
}

func (h *Handler) downloadPDF(c *gin.Context) {
	var r resume.Resume
	if err := h.bindJSON(c, &r, "No resume data provided."); err != nil {
		respond.Failure(c, err)
		return
	}

	pdf, filename, err := h.Svc.RenderPDF(r)
	if err != nil {
		respond.Failure(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) scrapeJD(c *gin.Context) {
	if h.Scraper == nil {
		respond.Failure(c, apperr.New(apperr.KindInternal, "Scraping is not configured.", nil))
		return
	}
	var req scrapeRequest
	if err := h.bindJSON(c, &req, "No data provided."); err != nil {
		respond.Failure(c, err)
		return
	}

	res, err := h.Scraper.Scrape(c.Request.Context(), req.URL, req.ApifyToken)
	if err != nil {
		respond.Failure(c, err)
		return
	}
	respond.OK(c, ScrapeResponse{
		Success:  true,
		Text:     res.Text,
		Title:    res.Title,
		Metadata: res.Metadata,
	})
}

// bindJSON decodes a JSON body capped at the upload limit.
func (h *Handler) bindJSON(c *gin.Context, dst any, emptyMessage string) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return bodyError(err, h.MaxUploadBytes)
	}
	return apperr.Validation(emptyMessage)
}

func bodyError(err error, limit int64) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.Validation(fmt.Sprintf("Upload too large; the limit is %d MB.", limit>>20))
	}
	return apperr.Validation("invalid form data")
}
