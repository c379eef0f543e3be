package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/DriftingBoats/wework-ark-bot/internal/models"
)

func TestMemoryDeliveries_ListNewestFirstWithFilters(t *testing.T) {
	m := NewMemoryDeliveries(10)
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	for i, kind := range []string{"daily", "manual", "daily"} {
		status := models.DeliveryStatusSent
		if i == 1 {
			status = models.DeliveryStatusFailed
		}
		if err := m.InsertDelivery(ctx, &models.DeliveryRecord{Kind: kind, Status: status, CreatedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	all, err := m.ListDeliveries(ctx, ListDeliveriesParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || !all[0].CreatedAt.Equal(base.Add(2*time.Hour)) {
		t.Fatalf("order wrong: %+v", all)
	}
	for _, it := range all {
		if it.ID == uuid.Nil {
			t.Fatalf("missing id")
		}
	}

	kind := "daily"
	daily, _ := m.ListDeliveries(ctx, ListDeliveriesParams{Kind: &kind})
	if len(daily) != 2 {
		t.Fatalf("daily=%d want 2", len(daily))
	}
	status := models.DeliveryStatusFailed
	failed, _ := m.ListDeliveries(ctx, ListDeliveriesParams{Status: &status})
	if len(failed) != 1 || failed[0].Kind != "manual" {
		t.Fatalf("failed=%+v", failed)
	}
	page, _ := m.ListDeliveries(ctx, ListDeliveriesParams{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].Kind != "manual" {
		t.Fatalf("page=%+v", page)
	}
	if empty, _ := m.ListDeliveries(ctx, ListDeliveriesParams{Offset: 10}); len(empty) != 0 {
		t.Fatalf("offset past end should be empty")
	}
}

func TestMemoryDeliveries_Bounded(t *testing.T) {
	m := NewMemoryDeliveries(2)
	for i := 0; i < 5; i++ {
		_ = m.InsertDelivery(context.Background(), &models.DeliveryRecord{Kind: "daily"})
	}
	got, _ := m.ListDeliveries(context.Background(), ListDeliveriesParams{})
	if len(got) != 2 {
		t.Fatalf("len=%d want 2", len(got))
	}
}

func TestNormalizeLimit(t *testing.T) {
	if NormalizeLimit(0, 50) != 50 || NormalizeLimit(1000, 50) != 500 || NormalizeLimit(7, 50) != 7 {
		t.Fatalf("NormalizeLimit wrong")
	}
}
