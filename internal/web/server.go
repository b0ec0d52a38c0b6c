package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"feedbackclassifier/internal/categories"
	"feedbackclassifier/internal/classify"
	"feedbackclassifier/internal/domain"
	"feedbackclassifier/internal/feedback"
	"feedbackclassifier/internal/report"
)

const (
	pageTitle     = "College Feedback Classifier"
	csvFilename   = "classified_feedback.csv"
	chartFilename = "category_distribution.png"
)

type Options struct {
	ResultsDir     string
	LabelColumn    string
	MaxUploadBytes int64
}

type Server struct {
	adapter *classify.Adapter
	opts    Options
	router  *gin.Engine
}

// NewServer expects model to be loaded already; see classify.Model.Ensure.
func NewServer(model *classify.Model, glossary *classify.Glossary, opts Options) *Server {
	if opts.LabelColumn == "" {
		opts.LabelColumn = domain.DefaultLabelColumn
	}
	s := &Server{
		adapter: classify.NewAdapter(model, glossary),
		opts:    opts,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = opts.MaxUploadBytes
	router.SetHTMLTemplate(pageTemplate)
	router.GET("/", s.index)
	router.POST("/classify", s.classify)
	router.GET("/results/:id/:file", s.result)
	s.router = router
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	if err := os.MkdirAll(s.opts.ResultsDir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	log.Printf("serving feedback classifier addr=%s results_dir=%s", addr, s.opts.ResultsDir)
	return s.router.Run(addr)
}

func (s *Server) page(categories string) pageData {
	return pageData{
		Title:       pageTitle,
		Categories:  categories,
		MaxUploadMB: s.opts.MaxUploadBytes >> 20,
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", s.page(""))
}

func (s *Server) fail(c *gin.Context, status int, data pageData, msg string) {
	data.Status = "Error: " + msg
	data.IsError = true
	c.HTML(status, "index", data)
}

func (s *Server) classify(c *gin.Context) {
	data := s.page("")
	tooLarge := fmt.Sprintf("file is larger than the %s upload limit", formatBytes(s.opts.MaxUploadBytes))
	if c.Request.ContentLength > s.opts.MaxUploadBytes {
		s.fail(c, http.StatusRequestEntityTooLarge, data, tooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(c, http.StatusRequestEntityTooLarge, data, tooLarge)
			return
		}
		data.Categories = c.PostForm("categories")
		s.fail(c, http.StatusBadRequest, data, "please upload a CSV file")
		return
	}
	rawCategories := c.PostForm("categories")
	data.Categories = rawCategories
	f, err := header.Open()
	if err != nil {
		s.fail(c, http.StatusBadRequest, data, "could not read upload")
		return
	}
	table, err := feedback.Read(f)
	f.Close()
	if err != nil {
		log.Printf("upload rejected file=%s err=%v", header.Filename, err)
		s.fail(c, http.StatusBadRequest, data, uploadErrorMessage(err))
		return
	}

	cats := categories.Resolve(rawCategories)
	preds, usage := s.adapter.ClassifyAll(c.Request.Context(), table.Texts(), cats, nil)
	dist := report.Distribution(preds, cats)

	id := uuid.NewString()
	dir := filepath.Join(s.opts.ResultsDir, id)
	log.Printf("upload classified id=%s file=%s rows=%d tokens=%d", id, header.Filename, len(preds), usage.TotalTokens())

	var problems []string
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Error creating result dir %s: %v", dir, err)
		problems = append(problems, "results could not be stored")
	} else {
		if err := report.WriteCSV(filepath.Join(dir, csvFilename), table, preds, s.opts.LabelColumn); err != nil {
			log.Printf("Error saving output CSV id=%s: %v", id, err)
			problems = append(problems, "CSV could not be saved")
		} else {
			data.CSVURL = resultURL(id, csvFilename)
		}
		if err := report.SaveChart(filepath.Join(dir, chartFilename), dist); err != nil {
			log.Printf("Error generating plot id=%s: %v", id, err)
			problems = append(problems, "chart could not be generated")
		} else {
			data.ChartURL = resultURL(id, chartFilename)
		}
	}

	data.Rows = len(preds)
	for _, p := range preds {
		if p.Failed() {
			data.Unknown++
		}
	}
	for _, cc := range dist {
		data.Counts = append(data.Counts, countRow{Category: cc.Category, Count: cc.Count})
	}
	data.Status = fmt.Sprintf("Classification complete ✅ (%d entries, %d unknown)", data.Rows, data.Unknown)
	if len(problems) > 0 {
		data.Status += "; " + strings.Join(problems, "; ")
	}
	c.HTML(http.StatusOK, "index", data)
}

func (s *Server) result(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	name := c.Param("file")
	switch name {
	case csvFilename:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvFilename))
	case chartFilename:
	default:
		c.Status(http.StatusNotFound)
		return
	}
	path := filepath.Join(s.opts.ResultsDir, id.String(), name)
	if _, err := os.Stat(path); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}

func resultURL(id, name string) string {
	return "/results/" + id + "/" + name
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingColumn):
		return "No 'Feedback' column found in CSV"
	case errors.Is(err, domain.ErrInputParse):
		return "could not parse CSV: " + err.Error()
	default:
		return err.Error()
	}
}
