package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/carrier-rating/internal/api/middleware"
	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const testSecret = "secret"

type stubRatingService struct {
	calls int
}

func (s *stubRatingService) CalculateRates(_ context.Context, carrierID string, _ domain.ShipmentDescription) (*domain.RateQuote, error) {
	s.calls++
	if carrierID == "ghost" {
		return nil, domain.ErrCarrierNotFound
	}
	return &domain.RateQuote{
		Carrier:  domain.CarrierProfile{ID: carrierID},
		Eligible: true,
		RateCard: &domain.RateCardRef{ID: "rc1", RateStructure: domain.StructureFlatRate},
		Result:   &domain.RateCalculationResult{FinalTotal: 100, BaseTotal: 100},
	}, nil
}

func (s *stubRatingService) ShopRates(_ context.Context, ids []string, _ domain.ShipmentDescription) ([]domain.CarrierQuote, error) {
	s.calls++
	out := make([]domain.CarrierQuote, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.CarrierQuote{CarrierID: id, Err: domain.ErrCarrierNotFound})
	}
	return out, nil
}

type stubCache struct{ invalidated []string }

func (s *stubCache) Invalidate(_ context.Context, id string) error {
	s.invalidated = append(s.invalidated, id)
	return nil
}

func newTestRouter(t *testing.T, svc *stubRatingService) http.Handler {
	t.Helper()
	return newTestRouterWithCache(t, svc, nil)
}

func newTestRouterWithCache(t *testing.T, svc *stubRatingService, cache *stubCache) http.Handler {
	t.Helper()
	deps := Dependencies{
		Service:      svc,
		JWTSecret:    testSecret,
		RateLimitRPS: 100,
		Logger:       zerolog.Nop(),
		Registry:     prometheus.NewRegistry(),
	}
	if cache != nil {
		deps.Cache = cache
	}
	return NewRouter(deps)
}

func signToken(t *testing.T, role, clientID string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username":  "alice",
		"role":      role,
		"client_id": clientID,
	})
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func serve(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const shipmentBody = `{"packages": [{"weight": 10, "length": 10, "width": 10, "height": 10}]}`

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestRouter(t, &stubRatingService{}), http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_RatesRequireAuth(t *testing.T) {
	svc := &stubRatingService{}
	rec := serve(newTestRouter(t, svc), http.MethodPost, "/v1/rates/acme", "", shipmentBody)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if svc.calls != 0 {
		t.Fatalf("service should not be called")
	}
}

func TestRouter_RatesForbidUnknownRole(t *testing.T) {
	rec := serve(newTestRouter(t, &stubRatingService{}), http.MethodPost, "/v1/rates/acme", signToken(t, "guest", ""), shipmentBody)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_CalculateAndErrors(t *testing.T) {
	h := newTestRouter(t, &stubRatingService{})
	token := signToken(t, middleware.RoleClient, "client_1")

	if rec := serve(h, http.MethodPost, "/v1/rates/acme", token, shipmentBody); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := serve(h, http.MethodPost, "/v1/rates/ghost", token, shipmentBody); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodPost, "/v1/rates/acme", token, `{"packages": []}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_ShopIsNotACarrierID(t *testing.T) {
	h := newTestRouter(t, &stubRatingService{})
	token := signToken(t, middleware.RoleAdmin, "")

	rec := serve(h, http.MethodPost, "/v1/rates/shop", token, `{"carrier_ids": ["a", "b"], "packages": [{"weight": 1}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"quotes"`) {
		t.Fatalf("expected a shop response, got %s", rec.Body.String())
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(t, &stubRatingService{})
	serve(h, http.MethodPost, "/v1/rates/acme", signToken(t, middleware.RoleClient, "client_1"), shipmentBody)

	rec := serve(h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "requests_total") {
		t.Errorf("expected echo request metrics in output")
	}
}

func TestRouter_CacheInvalidationIsAdminOnly(t *testing.T) {
	cache := &stubCache{}
	h := newTestRouterWithCache(t, &stubRatingService{}, cache)

	rec := serve(h, http.MethodDelete, "/v1/carriers/acme/cache", signToken(t, middleware.RoleClient, "client_1"), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("client: expected 403, got %d", rec.Code)
	}

	rec = serve(h, http.MethodDelete, "/v1/carriers/acme/cache", signToken(t, middleware.RoleAdmin, ""), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin: expected 204, got %d", rec.Code)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "acme" {
		t.Errorf("invalidated = %v", cache.invalidated)
	}
}
