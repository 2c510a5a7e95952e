package report

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/greentrack/greentrack-api/internal/middleware"
	"github.com/greentrack/greentrack-api/internal/pkg/imaging"
	"github.com/greentrack/greentrack-api/internal/pkg/jwt"
	"github.com/greentrack/greentrack-api/internal/pkg/storage"
	"github.com/greentrack/greentrack-api/internal/pkg/upload"
)

type nopStorage struct{}

func (nopStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	_, err := io.Copy(io.Discard, reader)
	return err
}

func (nopStorage) Delete(ctx context.Context, key string) error { return nil }

func (nopStorage) GetURL(key string) string { return "/uploads/" + key }

var _ storage.Storage = nopStorage{}

func newReportRouter() chi.Router {
	svc := NewService(&fakeReportRepo{}, &fakeUserRepo{}, &fakeAccruer{}, fakeURLs{})
	uploads := upload.NewService(nopStorage{}, imaging.NewProcessor(imaging.DefaultConfig()))
	handler := NewHandler(svc, uploads)

	jwtSvc := jwt.NewService("secret", time.Minute, time.Hour)
	return handler.Routes(
		middleware.Auth(jwtSvc),
		middleware.RequireReporter(),
		middleware.RequireModerator(),
	)
}

func reportRequest(t *testing.T, router chi.Router, method, path, role string) int {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		jwtSvc := jwt.NewService("secret", time.Minute, time.Hour)
		token, err := jwtSvc.GenerateAccessToken(uuid.New(), role)
		if err != nil {
			t.Fatalf("token gen failed: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestListMyOpenToAnyAuthenticatedRole(t *testing.T) {
	router := newReportRouter()

	for _, role := range []string{"citizen", "volunteer", "moderator", "admin"} {
		if code := reportRequest(t, router, http.MethodGet, "/my", role); code != http.StatusOK {
			t.Fatalf("expected 200 for %s on /my, got %d", role, code)
		}
	}
}

func TestListMyRequiresToken(t *testing.T) {
	router := newReportRouter()

	if code := reportRequest(t, router, http.MethodGet, "/my", ""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", code)
	}
}

func TestCreateStillRequiresReporterRole(t *testing.T) {
	router := newReportRouter()

	if code := reportRequest(t, router, http.MethodPost, "/", "volunteer"); code != http.StatusForbidden {
		t.Fatalf("expected 403 for volunteer on create, got %d", code)
	}
}
