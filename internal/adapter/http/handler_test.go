package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `name: Jane Doe
contact:
  email: jane@example.com
experience:
  - company: Acme
    position: Engineer
    start_date: 2020-03-15
    end_date: Present
`

type stubRenderer struct{}

func (stubRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-local"), nil
}

type stubGenerator struct{ err error }

func (g stubGenerator) Generate(ctx context.Context, payload interface{}) (string, error) {
	return "id", g.err
}

func (g stubGenerator) Download(ctx context.Context, fileID string) ([]byte, error) {
	return []byte("%PDF-remote"), nil
}

func (g stubGenerator) Health(ctx context.Context) error { return g.err }

type stubDrafts struct {
	drafts map[uuid.UUID]*domain.ResumeDraft
	down   bool
}

func (s *stubDrafts) Save(ctx context.Context, d *domain.ResumeDraft) error {
	if s.down {
		return domain.ErrDraftStoreUnavailable
	}
	d.ID = uuid.New()
	s.drafts[d.ID] = d
	return nil
}

func (s *stubDrafts) Get(ctx context.Context, id uuid.UUID) (*domain.ResumeDraft, error) {
	if s.down {
		return nil, domain.ErrDraftStoreUnavailable
	}
	d, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return d, nil
}

func (s *stubDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	if s.down {
		return domain.ErrDraftStoreUnavailable
	}
	if _, ok := s.drafts[id]; !ok {
		return domain.ErrDraftNotFound
	}
	delete(s.drafts, id)
	return nil
}

func newTestApp(gen stubGenerator, drafts *stubDrafts) *fiber.App {
	p := usecase.NewProcessor(stubRenderer{}, gen, drafts, "../../../templates", nil)
	app := fiber.New()
	NewHandler(p).Register(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, contentType, body string) (int, string, string) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(b)
}

func TestHealth(t *testing.T) {
	app := newTestApp(stubGenerator{err: errors.New("down")}, &stubDrafts{})
	code, _, body := do(t, app, "GET", "/health", "", "")
	assert.Equal(t, 200, code)
	assert.JSONEq(t, `{"status":"ok","generator":"unavailable"}`, body)
}

func TestParse(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{})

	code, _, body := do(t, app, "POST", "/resume/parse", "text/plain", doc)
	require.Equal(t, 200, code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "Jane Doe", out["name"])
	exp := out["experience"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Mar 2020", exp["date_start"])
	assert.Equal(t, "Present", exp["date_end"])
}

func TestParseMalformedJSON(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{})

	code, _, body := do(t, app, "POST", "/resume/parse", "application/json", `{"name":`)
	assert.Equal(t, 400, code)

	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "failed to parse file, check the format", out["error"])
	assert.Contains(t, out["detail"], "malformed json document")
}

func TestParseUnknownFormat(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{})
	code, _, _ := do(t, app, "POST", "/resume/parse?format=xml", "", doc)
	assert.Equal(t, 400, code)
}

func TestExportToText(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{})
	in := `{"name":"Jane Doe","contact":{"links":[]},"experience":[{"title":"Engineer","company":"Acme","date_start":"Mar 2020","date_end":"Present"}]}`

	code, ct, body := do(t, app, "POST", "/resume/export?to=text", "application/json", in)
	require.Equal(t, 200, code)
	assert.Equal(t, "text/plain; charset=utf-8", ct)
	assert.Contains(t, body, "name: Jane Doe\n")
	assert.Contains(t, body, "    start_date: Mar 2020\n")
	assert.Contains(t, body, "    end_date: Present\n")
}

func TestGenerate(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{})
	code, ct, body := do(t, app, "POST", "/resume/generate", "", doc)
	require.Equal(t, 200, code)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, "%PDF-remote", body)
}

func TestGenerateInvalidPayload(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{})
	code, _, _ := do(t, app, "POST", "/resume/generate", "", "contact:\n  email: a@b.c\n")
	assert.Equal(t, 422, code)
}

func TestGenerateUpstreamFailure(t *testing.T) {
	app := newTestApp(stubGenerator{err: errors.New("boom")}, &stubDrafts{})
	code, _, _ := do(t, app, "POST", "/resume/generate", "", doc)
	assert.Equal(t, 502, code)
}

func TestPreview(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{})
	code, ct, body := do(t, app, "POST", "/resume/preview", "", doc)
	require.Equal(t, 200, code)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, "%PDF-local", body)
}

func TestDrafts(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{drafts: map[uuid.UUID]*domain.ResumeDraft{}})

	code, _, body := do(t, app, "POST", "/resume/drafts", "", doc)
	require.Equal(t, 201, code)
	var created map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "Jane Doe", created["name"])

	code, _, body = do(t, app, "GET", "/resume/drafts/"+created["id"], "", "")
	require.Equal(t, 200, code)
	var got struct {
		Format string `json:"format"`
		Resume struct {
			Name string `json:"name"`
		} `json:"resume"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "text", got.Format)
	assert.Equal(t, "Jane Doe", got.Resume.Name)

	code, _, _ = do(t, app, "GET", "/resume/drafts/"+uuid.NewString(), "", "")
	assert.Equal(t, 404, code)
	code, _, _ = do(t, app, "GET", "/resume/drafts/not-a-uuid", "", "")
	assert.Equal(t, 400, code)

	code, _, _ = do(t, app, "DELETE", "/resume/drafts/"+created["id"], "", "")
	assert.Equal(t, 204, code)
	code, _, _ = do(t, app, "DELETE", "/resume/drafts/"+created["id"], "", "")
	assert.Equal(t, 404, code)
}

func TestDraftsUnavailable(t *testing.T) {
	app := newTestApp(stubGenerator{}, &stubDrafts{down: true})
	code, _, _ := do(t, app, "POST", "/resume/drafts", "", doc)
	assert.Equal(t, 503, code)
}

func TestRequestContext(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext())
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(logger.RequestID(c.UserContext()))
	})

	req := httptest.NewRequest("GET", "/id", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc-123", string(b))
	assert.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))

	resp, err = app.Test(httptest.NewRequest("GET", "/id", nil))
	require.NoError(t, err)
	b, _ = io.ReadAll(resp.Body)
	_, err = uuid.Parse(string(b))
	assert.NoError(t, err)
}
