package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Raymond9734/community-site/internal/models"
	"github.com/Raymond9734/community-site/internal/repository"
	"github.com/Raymond9734/community-site/internal/service"
	"github.com/Raymond9734/community-site/web"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// instantSubmitter confirms without delay
type instantSubmitter struct{}

func (instantSubmitter) Submit(ctx context.Context, form models.EnquiryForm) (string, error) {
	return service.NewTemplateService().Confirmation(&form)
}

// gatedSubmitter holds each submission until release is closed
type gatedSubmitter struct {
	started chan struct{}
	release chan struct{}
}

func (s *gatedSubmitter) Submit(ctx context.Context, form models.EnquiryForm) (string, error) {
	s.started <- struct{}{}
	<-s.release
	return service.NewTemplateService().Confirmation(&form)
}

type testServer struct {
	handler  http.Handler
	sessions *ControllerStore
}

func newTestServer(t *testing.T, submitter service.SubmissionService, checks map[string]HealthChecker) *testServer {
	t.Helper()
	logger := testLogger()

	templates, err := web.TemplatesFS()
	if err != nil {
		t.Fatalf("TemplatesFS() error = %v", err)
	}
	renderer, err := NewRenderer(templates, logger)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	static, err := web.StaticFS()
	if err != nil {
		t.Fatalf("StaticFS() error = %v", err)
	}

	repo := repository.NewYAMLProductRepository([]*models.Product{
		{ID: 1, Slug: "honey-jar", Name: "Wildflower Honey", ImageURL: "/img/honey.jpg", AltText: "Golden honey", Description: "Raw honey from **local** hives."},
		{ID: 2, Slug: "candle", Name: "Beeswax Candle", ImageURL: "/img/candle.jpg", AltText: "Beeswax candle"},
		{ID: 3, Slug: "tote", Name: "Canvas Tote", ImageURL: "/img/tote.jpg", AltText: "Tote bag"},
	})
	catalog := service.NewCatalogService(repo, logger)

	validator := service.NewEnquiryValidator()
	sessions := NewControllerStore(func() *service.EnquiryController {
		return service.NewEnquiryController(validator, submitter, logger)
	})

	router := NewRouter(RouterDeps{
		Pages:     NewPageHandler(renderer),
		Products:  NewProductHandler(catalog, renderer, logger),
		Enquiries: NewEnquiryHandler(sessions, renderer, logger),
		Health:    NewHealthHandler(checks, logger),
		Static:    static,
		Logger:    logger,
	})

	return &testServer{handler: router, sessions: sessions}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func validValues() url.Values {
	return url.Values{
		"name":         {"Jane Doe"},
		"email":        {"jane@example.com"},
		"phone":        {"0712345678"},
		"inquiry_type": {"products"},
		"message":      {"Do you still stock honey?"},
	}
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/enquiries", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("body does not contain %q", w)
		}
	}
}

func assertNotContains(t *testing.T, body string, unwanted ...string) {
	t.Helper()
	for _, u := range unwanted {
		if strings.Contains(body, u) {
			t.Errorf("body unexpectedly contains %q", u)
		}
	}
}
