package cronrunner

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestAdd_ValidatesSpec(t *testing.T) {
	r := New(zap.NewNop(), context.Background(), time.UTC)
	if _, err := r.Add("bad", "not a spec", func(context.Context) {}); err == nil {
		t.Fatalf("expected parse error")
	}
	// five-field specs are rejected once seconds are enabled
	if _, err := r.Add("five", "30 9 * * MON-FRI", func(context.Context) {}); err == nil {
		t.Fatalf("expected parse error for five fields")
	}
	if _, err := r.Add("daily", "0 30 9 * * MON-FRI", func(context.Context) {}); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestNext_UsesLocation(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	r := New(nil, nil, loc)
	id, err := r.Add("daily", "0 30 9 * * *", func(context.Context) {})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	r.Start()
	defer r.Stop()

	next := r.Next(id).In(loc)
	if next.IsZero() || next.Hour() != 9 || next.Minute() != 30 {
		t.Fatalf("next=%s", next)
	}
}

func TestJobRunsWithBaseContext(t *testing.T) {
	type key struct{}
	base := context.WithValue(context.Background(), key{}, "v")
	r := New(nil, base, time.UTC)
	got := make(chan any, 1)
	if _, err := r.Add("tick", "@every 1s", func(ctx context.Context) {
		select {
		case got <- ctx.Value(key{}):
		default:
		}
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	r.Start()
	defer r.Stop()

	select {
	case v := <-got:
		if v != "v" {
			t.Fatalf("ctx value=%v", v)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("job did not run")
	}
}
