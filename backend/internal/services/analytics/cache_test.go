package analytics

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway/gatewaytest"
	redrepo "github.com/brodiemcgee/eros-admin/backend/internal/repo/redis"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/transition"
)

func TestReportServedFromCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	fake := &gatewaytest.Fake{CountFn: func(gateway.Query) (int64, error) { return 3, nil }}
	svc := NewService(fake, Config{Cache: redrepo.NewCacheRepo(client), CacheTTL: time.Minute}, nil)

	first, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("first report: %v", err)
	}
	calls := fake.Calls()

	second, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("second report: %v", err)
	}
	if fake.Calls() != calls {
		t.Fatalf("expected cached report, gateway calls went from %d to %d", calls, fake.Calls())
	}
	if second.Moderation != first.Moderation {
		t.Fatalf("cached report differs: %+v vs %+v", second.Moderation, first.Moderation)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := svc.Report(context.Background()); err != nil {
		t.Fatalf("report after expiry: %v", err)
	}
	if fake.Calls() == calls {
		t.Fatalf("expected gateway to be queried after cache expiry")
	}
}

func TestPartialReportIsNotCached(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	fake := &gatewaytest.Fake{SelectFn: func(q gateway.Query) (json.RawMessage, error) {
		if q.Table == "payment_transactions" {
			return nil, &gateway.BackendError{Op: "select", Message: "timeout"}
		}
		return json.RawMessage("[]"), nil
	}}
	svc := NewService(fake, Config{Cache: redrepo.NewCacheRepo(client), CacheTTL: time.Minute}, nil)

	if _, err := svc.Report(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	if mr.Exists("cache:analytics:report") {
		t.Fatalf("partial report must not be cached")
	}
}

func TestReportRebuiltAfterTransition(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	var approved atomic.Int64
	approved.Store(1)
	fake := &gatewaytest.Fake{CountFn: func(q gateway.Query) (int64, error) {
		if q.Table == "photo_moderation_queue" && len(q.Filters) == 1 && q.Filters[0].Value == "approved" {
			return approved.Load(), nil
		}
		return 0, nil
	}}
	svc := NewService(fake, Config{Cache: redrepo.NewCacheRepo(client), CacheTTL: time.Hour}, nil)
	transitions := transition.NewService(fake, nil).WithInvalidator(svc)

	before, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("report before: %v", err)
	}
	if before.Moderation.Approved != 1 {
		t.Fatalf("unexpected approved count before: %d", before.Moderation.Approved)
	}
	if !mr.Exists("cache:analytics:report") {
		t.Fatalf("expected report to be cached")
	}

	if err := transitions.Apply(context.Background(), transition.PhotoApprove, transition.Request{ID: "q-2", ActorID: "adm-1"}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	approved.Store(2)
	if mr.Exists("cache:analytics:report") {
		t.Fatalf("cached report must be dropped after a write")
	}

	after, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("report after: %v", err)
	}
	if after.Moderation.Approved != 2 {
		t.Fatalf("stale report after approve: approved=%d", after.Moderation.Approved)
	}
}

func TestFailedTransitionKeepsCachedReport(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	fake := &gatewaytest.Fake{UpdateErr: &gateway.BackendError{Op: "update", StatusCode: 403, Message: "permission denied"}}
	svc := NewService(fake, Config{Cache: redrepo.NewCacheRepo(client), CacheTTL: time.Hour}, nil)
	transitions := transition.NewService(fake, nil).WithInvalidator(svc)

	if _, err := svc.Report(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := transitions.Apply(context.Background(), transition.PhotoApprove, transition.Request{ID: "q-2"}); err == nil {
		t.Fatalf("expected update error")
	}
	if !mr.Exists("cache:analytics:report") {
		t.Fatalf("failed write must not drop the cached report")
	}
}
