package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/resumedoc"
	"resume-builder/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// ErrUnknownFormat is returned for formats other than text and json.
	ErrUnknownFormat = errors.New("unknown document format")

	// ErrInvalidPDF is returned when a renderer produces bytes without a PDF signature.
	ErrInvalidPDF = errors.New("invalid PDF output")
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type Generator interface {
	Generate(ctx context.Context, payload interface{}) (string, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
	Health(ctx context.Context) error
}

type DraftsRepo interface {
	Save(ctx context.Context, d *domain.ResumeDraft) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ResumeDraft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Processor struct {
	renderer   Renderer
	generator  Generator
	repo       DraftsRepo
	tplDir     string
	metrics    *metrics.Metrics
	logger     *slog.Logger
	parser     *resumedoc.Parser
	attempts   int
	retryDelay time.Duration
}

func NewProcessor(r Renderer, g Generator, repo DraftsRepo, tplDir string, m *metrics.Metrics) *Processor {
	logger := slog.Default().With("component", "processor")
	return &Processor{
		renderer:   r,
		generator:  g,
		repo:       repo,
		tplDir:     tplDir,
		metrics:    m,
		logger:     logger,
		parser:     resumedoc.NewParser(resumedoc.WithLogger(logger)),
		attempts:   3,
		retryDelay: time.Second,
	}
}

// NormalizeFormat maps a user supplied format name to FormatText or
// FormatJSON. Empty means text.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "txt", "yaml", "yml":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Decode parses an uploaded document. Document-level failures come back as
// *resumedoc.MalformedDocumentError.
func (p *Processor) Decode(format string, body []byte) (*domain.ResumeRecord, error) {
	f, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	var rec *domain.ResumeRecord
	if f == FormatJSON {
		rec, err = resumedoc.ParseJSON(body)
	} else {
		rec, err = p.parser.Parse(body)
	}
	p.metrics.ObserveParse(f, err)
	if err != nil {
		p.logger.Warn("decode failed", "format", f, "error", err)
		return nil, err
	}
	return rec, nil
}

// Export serializes rec to the requested format and returns the content type.
func (p *Processor) Export(rec *domain.ResumeRecord, to string) ([]byte, string, error) {
	f, err := NormalizeFormat(to)
	if err != nil {
		return nil, "", err
	}
	if f == FormatText {
		return []byte(resumedoc.SerializeToText(rec)), "text/plain; charset=utf-8", nil
	}
	b, err := resumedoc.SerializeToJSON(rec)
	if err != nil {
		return nil, "", fmt.Errorf("export json: %w", err)
	}
	return b, "application/json", nil
}

// Generate validates the transport JSON and has the remote service render it.
func (p *Processor) Generate(ctx context.Context, rec *domain.ResumeRecord) ([]byte, error) {
	pdf, err := p.generate(ctx, rec)
	p.metrics.ObserveRender("remote", err)
	return pdf, err
}

func (p *Processor) generate(ctx context.Context, rec *domain.ResumeRecord) ([]byte, error) {
	if p.generator == nil {
		return nil, errors.New("generation service not configured")
	}
	payload := resumedoc.ToTransport(rec)
	if err := model.Validate(payload); err != nil {
		return nil, err
	}
	id, err := p.generator.Generate(ctx, payload)
	if err != nil {
		return nil, err
	}
	pdf, err := p.generator.Download(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isPDF(pdf) {
		return nil, fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))
	}
	return pdf, nil
}

// GeneratorHealth checks the remote generation service.
func (p *Processor) GeneratorHealth(ctx context.Context) error {
	if p.generator == nil {
		return errors.New("generation service not configured")
	}
	return p.generator.Health(ctx)
}

func isPDF(b []byte) bool { return bytes.HasPrefix(b, []byte("%PDF")) }

type linkView struct {
	Name  string
	URL   string
	Label string
}

type certView struct {
	model.Certification
	Label string
}

type previewData struct {
	Resume         model.Resume
	Links          []linkView
	Certifications []certView
}

// linkLabel turns a URL into a short domain label for display.
func linkLabel(raw string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return ""
	}
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return raw
	}
	host := parsed.Hostname()
	if host == "" {
		return candidate
	}
	// attempt eTLD+1 extraction for tidy labels
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label := strings.TrimPrefix(etld, "www.")
		if path := strings.Trim(parsed.Path, "/"); path != "" && !strings.Contains(path, "/") {
			label += "/" + path
		}
		return label
	}
	return strings.TrimPrefix(host, "www.")
}

// RenderHTML renders the preview template with the stylesheet inlined.
func (p *Processor) RenderHTML(rec *domain.ResumeRecord) (string, error) {
	tpl, err := template.ParseFiles(filepath.Join(p.tplDir, "preview.html"))
	if err != nil {
		return "", fmt.Errorf("load preview template: %w", err)
	}

	t := resumedoc.ToTransport(rec)
	data := previewData{Resume: t}
	for _, l := range t.Contact.Links {
		data.Links = append(data.Links, linkView{Name: l.Name, URL: l.URL, Label: linkLabel(l.URL)})
	}
	for _, c := range t.Certifications {
		label := linkLabel(c.URL)
		if label == "" {
			label = c.Organization
		}
		data.Certifications = append(data.Certifications, certView{Certification: c, Label: label})
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render preview template: %w", err)
	}
	html := buf.String()

	// Inline the stylesheet so the HTML renders on its own.
	if css, err := os.ReadFile(filepath.Join(p.tplDir, "style.css")); err == nil && len(css) > 0 {
		cssBlock := "<style>" + string(css) + "</style>"
		if strings.Contains(strings.ToLower(html), "<head>") {
			html = strings.Replace(html, "<head>", "<head>"+cssBlock, 1)
		} else {
			html = cssBlock + html
		}
	} else {
		p.logger.Debug("no stylesheet to inline", "dir", p.tplDir)
	}
	return html, nil
}

// Preview renders rec to PDF locally, retrying the renderer with backoff.
func (p *Processor) Preview(ctx context.Context, rec *domain.ResumeRecord) ([]byte, error) {
	pdf, err := p.preview(ctx, rec)
	p.metrics.ObserveRender("local", err)
	return pdf, err
}

func (p *Processor) preview(ctx context.Context, rec *domain.ResumeRecord) ([]byte, error) {
	if p.renderer == nil {
		return nil, errors.New("renderer not configured")
	}
	html, err := p.RenderHTML(rec)
	if err != nil {
		return nil, err
	}

	var renderErr error
	for i := 0; i < p.attempts; i++ {
		pdf, err := p.renderer.RenderHTMLToPDF(ctx, html)
		if err == nil {
			if isPDF(pdf) {
				return pdf, nil
			}
			err = fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))
		}
		renderErr = err
		p.logger.Warn("render attempt failed", "attempt", i+1, "error", err)
		// exponential backoff before retrying
		if i < p.attempts-1 {
			select {
			case <-time.After(time.Duration(1<<i) * p.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("rendering failed after %d attempts: %w", p.attempts, renderErr)
}

// SaveDraft stores rec as a draft. The payload is the transport JSON.
func (p *Processor) SaveDraft(ctx context.Context, format string, source []byte, rec *domain.ResumeRecord) (*domain.ResumeDraft, error) {
	if p.repo == nil {
		return nil, domain.ErrDraftStoreUnavailable
	}
	payload, err := resumedoc.SerializeToJSON(rec)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	d := &domain.ResumeDraft{
		Name:    rec.Name,
		Format:  format,
		Source:  string(source),
		Payload: payload,
	}
	if err := p.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	p.logger.Info("draft saved", "id", d.ID.String(), "format", format)
	return d, nil
}

// LoadDraft fetches a draft and decodes its payload.
func (p *Processor) LoadDraft(ctx context.Context, id uuid.UUID) (*domain.ResumeDraft, *domain.ResumeRecord, error) {
	if p.repo == nil {
		return nil, nil, domain.ErrDraftStoreUnavailable
	}
	d, err := p.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rec, err := resumedoc.ParseJSON(d.Payload)
	if err != nil {
		return nil, nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return d, rec, nil
}

func (p *Processor) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if p.repo == nil {
		return domain.ErrDraftStoreUnavailable
	}
	if err := p.repo.Delete(ctx, id); err != nil {
		return err
	}
	p.logger.Info("draft deleted", "id", id.String())
	return nil
}
