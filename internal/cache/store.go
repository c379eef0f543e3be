package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ResourceType selects which TTL applies to an entry.
type ResourceType string

const (
	TypeWeather ResourceType = "weather"
	TypeFortune ResourceType = "fortune"
)

// TTLTable maps a resource type to how long its entries stay valid.
type TTLTable map[ResourceType]time.Duration

func DefaultTTLs() TTLTable {
	return TTLTable{
		TypeWeather: time.Hour,
		TypeFortune: 12 * time.Hour,
	}
}

// Entry is the unit persisted by a Backend. It is always replaced whole.
type Entry struct {
	Key        string          `json:"key"`
	Payload    json.RawMessage `json:"payload"`
	RecordedAt time.Time       `json:"recorded_at"`
	Type       ResourceType    `json:"type"`
}

// Backend persists entries without interpreting them.
type Backend interface {
	Load(ctx context.Context, key string) (Entry, bool, error)
	Save(ctx context.Context, e Entry, ttl time.Duration) error
}

// Store answers validity queries against a per-type TTL table. Expiry is
// computed lazily on read; nothing is ever deleted.
type Store struct {
	backend Backend
	ttls    TTLTable
	now     func() time.Time
	logger  *zap.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithTTLs(ttls TTLTable) Option {
	return func(s *Store) {
		if len(ttls) > 0 {
			s.ttls = ttls
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(backend Backend, opts ...Option) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	s := &Store{
		backend: backend,
		ttls:    DefaultTTLs(),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get decodes the payload stored under key into dst and reports whether a
// valid entry was found. Missing, expired, untyped or undecodable entries all
// read as absent.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	e, found, err := s.backend.Load(ctx, key)
	if err != nil {
		s.logger.Warn("cache load failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found || !s.valid(e) {
		return false
	}
	if dst == nil {
		return true
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		s.logger.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set overwrites any entry under key with payload stamped at the current time.
func (s *Store) Set(ctx context.Context, key string, payload any, typ ResourceType) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	e := Entry{
		Key:        key,
		Payload:    raw,
		RecordedAt: s.now(),
		Type:       typ,
	}
	if err := s.backend.Save(ctx, e, s.ttls[typ]); err != nil {
		s.logger.Warn("cache save failed", zap.String("key", key), zap.Error(err))
	}
}

// TTL reports the configured lifetime for typ.
func (s *Store) TTL(typ ResourceType) (time.Duration, bool) {
	ttl, ok := s.ttls[typ]
	return ttl, ok && ttl > 0
}

func (s *Store) valid(e Entry) bool {
	ttl, ok := s.TTL(e.Type)
	if !ok || e.RecordedAt.IsZero() {
		return false
	}
	return s.now().Sub(e.RecordedAt) < ttl
}

// Key builds a resource key of the form resource:part1:part2. Empty parts
// are skipped.
func Key(resource string, parts ...string) string {
	sb := strings.Builder{}
	sb.WriteString(strings.TrimSpace(resource))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sb.WriteByte(':')
		sb.WriteString(p)
	}
	return sb.String()
}
