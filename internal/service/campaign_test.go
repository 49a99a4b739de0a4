package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"crowdpay/internal/domain"
)

func TestCampaignCreate(t *testing.T) {
	repo := newFakeCampaignRepo()
	svc := NewCampaignService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), "user-1", CreateCampaignInput{
		Title:      "Mama Njeri's Grocery Expansion",
		GoalAmount: 250_000,
		IsPublic:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "mama-njeri-s-grocery-expansion" {
		t.Fatalf("slug = %q", created.Slug)
	}
	if created.Mode != domain.CampaignModeMerchant {
		t.Fatalf("mode = %q, want merchant default", created.Mode)
	}
	if created.Category != domain.CategoryOther {
		t.Fatalf("category = %q, want other default", created.Category)
	}
}

func TestCampaignCreate_Validation(t *testing.T) {
	svc := NewCampaignService(newFakeCampaignRepo(), zerolog.Nop())
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateCampaignInput
		want error
	}{
		{"blank title", CreateCampaignInput{Title: "  "}, domain.ErrValidation},
		{"negative goal", CreateCampaignInput{Title: "x", GoalAmount: -1}, domain.ErrValidation},
		{"unknown mode", CreateCampaignInput{Title: "x", Mode: "carnival"}, domain.ErrValidation},
		{"unknown category", CreateCampaignInput{Title: "x", Category: "nope"}, domain.ErrValidation},
		{"reserved slug prefix", CreateCampaignInput{Title: "x", Slug: "demo-mine"}, domain.ErrValidation},
		{"unsluggable title", CreateCampaignInput{Title: "!!!"}, domain.ErrValidation},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, "user-1", tc.in); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}

	if _, err := svc.Create(ctx, "", CreateCampaignInput{Title: "x"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("anonymous create: err = %v, want ErrUnauthorized", err)
	}
}

func TestCampaignCreate_DuplicateSlug(t *testing.T) {
	repo := newFakeCampaignRepo()
	repo.createErr = errUniqueViolation
	svc := NewCampaignService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), "user-1", CreateCampaignInput{Title: "Water Well"})
	if !errors.Is(err, domain.ErrDuplicateOperation) {
		t.Fatalf("err = %v, want ErrDuplicateOperation", err)
	}
}

func TestCampaignGetByRef(t *testing.T) {
	repo := newFakeCampaignRepo(
		&domain.Campaign{ID: "c1", UserID: "user-1", Slug: "water-well", IsPublic: true},
		&domain.Campaign{ID: "c2", UserID: "user-1", Slug: "private-drive", IsPublic: false},
	)
	svc := NewCampaignService(repo, zerolog.Nop())
	ctx := context.Background()

	got, err := svc.GetByRef(ctx, "water-well", "")
	if err != nil || got.ID != "c1" {
		t.Fatalf("public lookup: %v, %+v", err, got)
	}

	if _, err := svc.GetByRef(ctx, "private-drive", "someone-else"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("private campaign leaked to non-owner: %v", err)
	}
	if got, err := svc.GetByRef(ctx, "private-drive", "user-1"); err != nil || got.ID != "c2" {
		t.Fatalf("owner lookup: %v, %+v", err, got)
	}

	if _, err := svc.GetByRef(ctx, "no-such-slug", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing slug: err = %v, want ErrNotFound", err)
	}
}

func TestCampaignGetByRef_Demo(t *testing.T) {
	svc := NewCampaignService(newFakeCampaignRepo(), zerolog.Nop())

	got, err := svc.GetByRef(context.Background(), "demo-merchant", "")
	if err != nil {
		t.Fatalf("demo lookup: %v", err)
	}
	if got.Source() != domain.CampaignSourceDemo {
		t.Fatalf("source = %v, want demo", got.Source())
	}
}

func TestCampaignGetByID_UnknownDemoID(t *testing.T) {
	svc := NewCampaignService(newFakeCampaignRepo(), zerolog.Nop())
	if _, err := svc.GetByID(context.Background(), "demo-nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
