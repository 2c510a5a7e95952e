package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/greentrack/greentrack-api/internal/middleware"
	"github.com/greentrack/greentrack-api/internal/pkg/jwt"
)

type fakeStatsRepo struct{}

func (fakeStatsRepo) Snapshot(ctx context.Context) (*Snapshot, error) {
	return &Snapshot{TotalReports: 42, LocationHotspots: []*Hotspot{}}, nil
}

func statsRequestWithRole(t *testing.T, role string) int {
	t.Helper()
	jwtSvc := jwt.NewService("secret", time.Minute, time.Hour)
	token, err := jwtSvc.GenerateAccessToken(uuid.New(), role)
	if err != nil {
		t.Fatalf("token gen failed: %v", err)
	}

	handler := NewHandler(NewService(fakeStatsRepo{}, nil, time.Minute))
	router := handler.Routes(middleware.Auth(jwtSvc), middleware.RequireModerator())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestStatsRejectsCitizen(t *testing.T) {
	if code := statsRequestWithRole(t, "citizen"); code != http.StatusForbidden {
		t.Fatalf("expected 403 for citizen, got %d", code)
	}
}

func TestStatsRejectsVolunteer(t *testing.T) {
	if code := statsRequestWithRole(t, "volunteer"); code != http.StatusForbidden {
		t.Fatalf("expected 403 for volunteer, got %d", code)
	}
}

func TestStatsAllowsModerator(t *testing.T) {
	if code := statsRequestWithRole(t, "moderator"); code != http.StatusOK {
		t.Fatalf("expected 200 for moderator, got %d", code)
	}
}
