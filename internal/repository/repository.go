package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DriftingBoats/wework-ark-bot/internal/models"
)

type DeliveryRepository interface {
	InsertDelivery(ctx context.Context, item *models.DeliveryRecord) error
	ListDeliveries(ctx context.Context, params ListDeliveriesParams) ([]models.DeliveryRecord, error)
}

type ListDeliveriesParams struct {
	Limit  int
	Offset int
	Kind   *string
	Status *string
	Since  *time.Time
}

func NormalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// MemoryDeliveries keeps the most recent deliveries in process. It backs the
// history endpoint when no database is configured.
type MemoryDeliveries struct {
	mu    sync.RWMutex
	items []models.DeliveryRecord
	max   int
}

func NewMemoryDeliveries(max int) *MemoryDeliveries {
	if max <= 0 {
		max = 200
	}
	return &MemoryDeliveries{max: max}
}

func (m *MemoryDeliveries) InsertDelivery(_ context.Context, item *models.DeliveryRecord) error {
	if m == nil || item == nil {
		return nil
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *item)
	if len(m.items) > m.max {
		m.items = append([]models.DeliveryRecord(nil), m.items[len(m.items)-m.max:]...)
	}
	return nil
}

func (m *MemoryDeliveries) ListDeliveries(_ context.Context, params ListDeliveriesParams) ([]models.DeliveryRecord, error) {
	if m == nil {
		return nil, nil
	}
	m.mu.RLock()
	out := make([]models.DeliveryRecord, 0, len(m.items))
	for _, it := range m.items {
		if params.Kind != nil && strings.TrimSpace(*params.Kind) != "" && it.Kind != strings.TrimSpace(*params.Kind) {
			continue
		}
		if params.Status != nil && strings.TrimSpace(*params.Status) != "" && it.Status != strings.TrimSpace(*params.Status) {
			continue
		}
		if params.Since != nil && !params.Since.IsZero() && it.CreatedAt.Before(*params.Since) {
			continue
		}
		out = append(out, it)
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	offset := NormalizeOffset(params.Offset)
	if offset >= len(out) {
		return []models.DeliveryRecord{}, nil
	}
	out = out[offset:]
	if limit := NormalizeLimit(params.Limit, 50); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
