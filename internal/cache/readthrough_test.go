package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type failingGateway struct{}

func (failingGateway) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}

func (failingGateway) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}

func (failingGateway) Delete(context.Context, ...string) error {
	return errors.New("backend down")
}

type countView struct {
	Total int64 `json:"total"`
}

func TestFetchMissThenHit(t *testing.T) {
	gw := NewMemoryGateway()
	rt := NewReadThrough(gw, 300*time.Second, time.Second)
	ctx := context.Background()
	var calls int32
	load := func(context.Context) (countView, error) {
		atomic.AddInt32(&calls, 1)
		return countView{Total: 3}, nil
	}

	first, err := Fetch(ctx, rt, KeyOfficersCount, load)
	if err != nil || first.Total != 3 {
		t.Fatalf("first fetch want 3 got %+v err=%v", first, err)
	}
	second, err := Fetch(ctx, rt, KeyOfficersCount, load)
	if err != nil || second.Total != 3 {
		t.Fatalf("second fetch want 3 got %+v err=%v", second, err)
	}
	if calls != 1 {
		t.Fatalf("loader calls want 1 got %d", calls)
	}

	rt.Invalidate(ctx, KeyOfficersCount)
	if _, err := Fetch(ctx, rt, KeyOfficersCount, load); err != nil {
		t.Fatalf("fetch after invalidate failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("invalidate should force recompute, loader calls want 2 got %d", calls)
	}
}

func TestFetchDegradesOnBackendFailure(t *testing.T) {
	rt := NewReadThrough(failingGateway{}, time.Minute, 50*time.Millisecond)
	ctx := context.Background()

	got, err := Fetch(ctx, rt, KeyAnalyticsOverview, func(context.Context) (countView, error) {
		return countView{Total: 9}, nil
	})
	if err != nil {
		t.Fatalf("cache failure must not surface, got %v", err)
	}
	if got.Total != 9 {
		t.Fatalf("value want 9 got %d", got.Total)
	}
	rt.Invalidate(ctx, KeyAnalyticsOverview)
}

func TestFetchCorruptEntryTreatedAsMiss(t *testing.T) {
	gw := NewMemoryGateway()
	ctx := context.Background()
	_ = gw.Set(ctx, KeyOfficersCount, []byte("not-json"), time.Minute)
	rt := NewReadThrough(gw, time.Minute, time.Second)

	got, err := Fetch(ctx, rt, KeyOfficersCount, func(context.Context) (countView, error) {
		return countView{Total: 4}, nil
	})
	if err != nil || got.Total != 4 {
		t.Fatalf("corrupt entry should recompute, got %+v err=%v", got, err)
	}
	raw, hit, _ := gw.Get(ctx, KeyOfficersCount)
	if !hit || string(raw) != `{"total":4}` {
		t.Fatalf("recomputed value should overwrite corrupt entry, got %s", raw)
	}
}

func TestFetchLoaderErrorIsNotCached(t *testing.T) {
	gw := NewMemoryGateway()
	rt := NewReadThrough(gw, time.Minute, time.Second)
	boom := errors.New("db down")

	_, err := Fetch(context.Background(), rt, KeyAnalyticsRanking, func(context.Context) (countView, error) {
		return countView{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("loader error want %v got %v", boom, err)
	}
	if gw.Len() != 0 {
		t.Fatalf("failed computation must not be cached")
	}
}

func TestFetchCollapsesConcurrentMisses(t *testing.T) {
	rt := NewReadThrough(NewMemoryGateway(), time.Minute, time.Second)
	release := make(chan struct{})
	var calls int32
	load := func(context.Context) (countView, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return countView{Total: 1}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Fetch(context.Background(), rt, KeyAnalyticsRanking, load)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got < 1 || got > 8 {
		t.Fatalf("unexpected loader calls %d", got)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Logf("loader ran %d times; late goroutines hit the cache after first completion", got)
	}
}

func TestInvalidateDuringLoadForcesFreshRead(t *testing.T) {
	gw := NewMemoryGateway()
	rt := NewReadThrough(gw, time.Minute, time.Second)
	ctx := context.Background()

	// 读者 A 已读到写入前的值，计算尚未结束
	loading := make(chan struct{})
	release := make(chan struct{})
	staleDone := make(chan countView, 1)
	go func() {
		view, _ := Fetch(ctx, rt, KeyOfficersCount, func(context.Context) (countView, error) {
			close(loading)
			<-release
			return countView{Total: 1}, nil
		})
		staleDone <- view
	}()
	<-loading

	// 写入完成后失效；之后的读者必须看到新值
	rt.Invalidate(ctx, KeyOfficersCount)
	fresh, err := Fetch(ctx, rt, KeyOfficersCount, func(context.Context) (countView, error) {
		return countView{Total: 2}, nil
	})
	if err != nil || fresh.Total != 2 {
		t.Fatalf("reader after invalidate want 2 got %+v err=%v", fresh, err)
	}

	close(release)
	if stale := <-staleDone; stale.Total != 1 {
		t.Fatalf("reader that started before the write keeps its own result, got %+v", stale)
	}

	raw, hit, err := gw.Get(ctx, KeyOfficersCount)
	if err != nil || !hit {
		t.Fatalf("fresh value should stay cached, hit=%v err=%v", hit, err)
	}
	if string(raw) != `{"total":2}` {
		t.Fatalf("stale load must not overwrite the cache, got %s", string(raw))
	}
}

func TestLoadStartedBeforeInvalidateIsNotCached(t *testing.T) {
	gw := NewMemoryGateway()
	rt := NewReadThrough(gw, time.Minute, time.Second)
	ctx := context.Background()

	_, err := Fetch(ctx, rt, KeyOfficersAll, func(context.Context) (countView, error) {
		rt.Invalidate(ctx, KeyOfficersAll)
		return countView{Total: 1}, nil
	})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if _, hit, _ := gw.Get(ctx, KeyOfficersAll); hit {
		t.Fatalf("value computed across an invalidation must not be cached")
	}
}

func TestNilReadThroughCallsLoader(t *testing.T) {
	got, err := Fetch(context.Background(), nil, "k", func(context.Context) (int, error) { return 5, nil })
	if err != nil || got != 5 {
		t.Fatalf("nil read-through want 5 got %d err=%v", got, err)
	}
}
