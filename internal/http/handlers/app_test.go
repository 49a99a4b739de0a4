package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
	"crowdpay/internal/middleware"
	"crowdpay/internal/service"
)

type fakeCampaignRepo struct {
	campaigns map[string]*domain.Campaign
}

func newFakeCampaignRepo(campaigns ...*domain.Campaign) *fakeCampaignRepo {
	r := &fakeCampaignRepo{campaigns: map[string]*domain.Campaign{}}
	for _, c := range campaigns {
		r.campaigns[c.ID] = c
	}
	return r
}

func (r *fakeCampaignRepo) Create(_ context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	out := *campaign
	out.ID = fmt.Sprintf("campaign-%d", len(r.campaigns)+1)
	r.campaigns[out.ID] = &out
	return &out, nil
}

func (r *fakeCampaignRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	if c, ok := r.campaigns[id]; ok {
		return c, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCampaignRepo) GetBySlug(_ context.Context, slug string) (*domain.Campaign, error) {
	for _, c := range r.campaigns {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCampaignRepo) UpdateCoverImage(_ context.Context, id, url string) (*domain.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c.CoverImageURL = url
	return c, nil
}

func (r *fakeCampaignRepo) ListByOwner(_ context.Context, userID string) ([]domain.Campaign, error) {
	var out []domain.Campaign
	for _, c := range r.campaigns {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeContributionRepo struct {
	items []domain.Contribution
}

func (r *fakeContributionRepo) Create(_ context.Context, contribution *domain.Contribution) (*domain.Contribution, error) {
	out := *contribution
	out.ID = fmt.Sprintf("contribution-%d", len(r.items)+1)
	r.items = append(r.items, out)
	return &out, nil
}

func (r *fakeContributionRepo) ListByCampaign(_ context.Context, campaignID string) ([]domain.Contribution, error) {
	var out []domain.Contribution
	for _, c := range r.items {
		if c.CampaignID == campaignID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestApp(campaigns ...*domain.Campaign) (*App, *fakeCampaignRepo, *fakeContributionRepo) {
	campaignRepo := newFakeCampaignRepo(campaigns...)
	contributionRepo := &fakeContributionRepo{}
	logger := zerolog.Nop()
	app := &App{
		Logger:           logger,
		Campaigns:        service.NewCampaignService(campaignRepo, logger),
		Contributions:    service.NewContributionService(campaignRepo, contributionRepo, logger),
		ContributionRepo: contributionRepo,
	}
	return app, campaignRepo, contributionRepo
}

// withRouteParam injects a chi URL parameter the way the router would.
func withRouteParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	payload := decodeBody(t, rr)
	envelope, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error envelope in %v", payload)
	}
	code, _ := envelope["code"].(string)
	return code
}
