package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/lucsky/cuid"
	log "github.com/sirupsen/logrus"

	"github.com/emotiondetector/emotiondetector/emotion"
)

const (
	textQueryParam  = "textToAnalyze"
	requestIDHeader = "X-Request-Id"
	contentTypeHTML = "text/html; charset=utf-8"
)

//go:embed static
var staticFS embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFS, "static/index.html"))

type Analyzer interface {
	Analyze(ctx context.Context, text string) (*emotion.Result, error)
}

type Server struct {
	analyzer Analyzer
	http     *http.Server
}

func New(analyzer Analyzer, addr string) *Server {
	s := &Server{analyzer: analyzer}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes wrapped in request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /emotionDetector", s.handleEmotionDetector)
	mux.HandleFunc("GET /{$}", handleIndex)
	return withRequestLogging(mux)
}

func (s *Server) Addr() string {
	return s.http.Addr
}

func (s *Server) ListenAndServe() error {
	log.Infof("emotion detector listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleEmotionDetector(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get(textQueryParam)
	logger := requestLogger(r)

	result, err := s.analyzer.Analyze(r.Context(), text)
	switch {
	case errors.Is(err, emotion.ErrInvalidText):
		logger.Info("invalid text submitted")
		writeHTML(w, http.StatusOK, InvalidTextMsg)
	case err != nil:
		logger.Errorf("error analyzing text: %v", err)
		writeHTML(w, http.StatusBadGateway, ClassificationFailMsg)
	case result == nil:
		logger.Error("analyzer returned no result and no error")
		writeHTML(w, http.StatusBadGateway, ClassificationFailMsg)
	default:
		logger.WithField("dominant", result.Dominant).Info("text analyzed")
		writeHTML(w, http.StatusOK, FormatResult(*result))
	}
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := indexTemplate.Execute(w, struct{ QueryParam string }{textQueryParam}); err != nil {
		requestLogger(r).Errorf("error rendering index: %v", err)
	}
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

type requestIDKey struct{}

func requestLogger(r *http.Request) *log.Entry {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return log.WithField("requestID", id).WithField("path", r.URL.Path)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLogging tags each request with an id and keeps a panicking
// handler from taking the process down.
func withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := cuid.New()
		w.Header().Set(requestIDHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		defer func() {
			if p := recover(); p != nil {
				requestLogger(r).Errorf("recovered from panic: %v", p)
				http.Error(rec, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
			requestLogger(r).
				WithField("method", r.Method).
				WithField("status", rec.status).
				WithField("elapsed", time.Since(start)).
				Debug("request handled")
		}()

		next.ServeHTTP(rec, r)
	})
}
