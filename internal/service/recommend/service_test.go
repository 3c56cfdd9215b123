package recommend

import (
	"context"
	"encoding/json"
	"path"
	"strconv"
	"sync"
	"testing"
	"time"

	"cine_social_server/internal/config"
	myredis "cine_social_server/internal/dao/redis"
	"cine_social_server/internal/dto/respond"
	"cine_social_server/internal/infrastructure/catalog"
	"cine_social_server/pkg/errorx"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

// invalidatingSnapshots 在第一次读取快照时让推荐缓存失效，模拟计算期间好友关系发生变更
type invalidatingSnapshots struct {
	*staticSnapshots
	once       sync.Once
	invalidate func()
}

func (s *invalidatingSnapshots) Get(ctx context.Context, userId string) ([]int64, error) {
	s.once.Do(s.invalidate)
	return s.staticSnapshots.Get(ctx, userId)
}

type fakeCatalog struct {
	titles map[int64]string
}

func (f fakeCatalog) GetMetadata(_ context.Context, itemId int64) (*catalog.Metadata, error) {
	title, ok := f.titles[itemId]
	if !ok {
		return nil, errorx.ErrUnavailable
	}
	return &catalog.Metadata{ItemId: itemId, Title: title, PosterPath: "/p.jpg", Rating: 7.5}, nil
}

func defaultConf() config.RecommendConfig {
	return config.RecommendConfig{DefaultLimit: 20, MaxLimit: 50, MaxFanout: 200, CacheTTLSeconds: 60}
}

func TestServiceDecoratesItems(t *testing.T) {
	engine, _ := newScenarioA()
	svc := NewRecommendService(engine, nil, fakeCatalog{titles: map[int64]string{30: "Heat"}}, defaultConf())

	rsp, err := svc.Recommend(context.Background(), "U", 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if rsp.Items[0].ItemId != 30 || rsp.Items[0].Title != "Heat" || rsp.Items[0].Rating != 7.5 {
		t.Fatalf("item 30 = %+v", rsp.Items[0])
	}
	// 影片信息不可用时保留推荐本身
	if rsp.Items[1].ItemId != 40 || rsp.Items[1].Title != "" || rsp.Items[1].Score != 1 {
		t.Fatalf("item 40 = %+v", rsp.Items[1])
	}
}

func TestServiceCachesByLimit(t *testing.T) {
	engine, snaps := newScenarioA()
	cache := newMemCache()
	svc := NewRecommendService(engine, cache, nil, defaultConf())
	ctx := context.Background()

	first, _ := svc.Recommend(ctx, "U", 0)
	calls := snaps.calls
	second, _ := svc.Recommend(ctx, "U", 20)
	if snaps.calls != calls {
		t.Fatalf("cache miss: snapshot calls %d -> %d", calls, snaps.calls)
	}
	if len(second.Items) != len(first.Items) || second.Items[0].Score != first.Items[0].Score {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}

	raw, ok := cache.data["recommend:U:0:20"]
	if !ok {
		t.Fatalf("result not stored under recommend:U:0:20, keys=%v", cache.data)
	}
	var stored respond.RecommendRespond
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || len(stored.Items) != 2 {
		t.Fatalf("stored = %s (%v)", raw, err)
	}
	if cache.ttls["recommend:U:0:20"] != time.Minute {
		t.Fatalf("ttl = %v", cache.ttls["recommend:U:0:20"])
	}

	_, _ = svc.Recommend(ctx, "U", 1)
	if snaps.calls == calls {
		t.Fatalf("different limit served from the same cache entry")
	}
}

func TestServiceClampsToConfiguredLimits(t *testing.T) {
	list := make([]int64, 0, 60)
	for i := int64(1); i <= 60; i++ {
		list = append(list, i)
	}
	snaps := &staticSnapshots{lists: map[string][]int64{"F1": list}}
	engine := NewEngine(staticFriends{friends: map[string][]respond.FriendRespond{"U": friendsOf("F1")}}, snaps, 0)
	conf := config.RecommendConfig{DefaultLimit: 5, MaxLimit: 10}
	svc := NewRecommendService(engine, nil, nil, conf)

	if rsp, _ := svc.Recommend(context.Background(), "U", 0); len(rsp.Items) != 5 {
		t.Fatalf("default limit: %d items", len(rsp.Items))
	}
	if rsp, _ := svc.Recommend(context.Background(), "U", 40); len(rsp.Items) != 10 {
		t.Fatalf("max limit: %d items", len(rsp.Items))
	}
}

func TestResultComputedBeforeInvalidationIsNotServed(t *testing.T) {
	cache := newMemCache()
	ctx := context.Background()
	snaps := &invalidatingSnapshots{
		staticSnapshots: &staticSnapshots{lists: map[string][]int64{
			"U":  {10, 20},
			"F1": {20, 30},
			"F2": {30, 40},
		}},
	}
	// 失效任务先于本次结果写入执行：版本号自增，再清理已有条目
	snaps.invalidate = func() {
		_, _ = cache.Incr(ctx, myredis.RecommendVersionKey("U"))
		_ = cache.DeleteByPattern(ctx, myredis.RecommendPattern("U"))
	}
	friends := staticFriends{friends: map[string][]respond.FriendRespond{"U": friendsOf("F1", "F2")}}
	svc := NewRecommendService(NewEngine(friends, snaps, 0), cache, nil, defaultConf())

	if _, err := svc.Recommend(ctx, "U", 20); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	// 旧版本的结果仍然写入了，但不能再被读到
	if _, ok := cache.data["recommend:U:0:20"]; !ok {
		t.Fatalf("expected the stale write under version 0, keys=%v", cache.data)
	}
	calls := snaps.calls
	if _, err := svc.Recommend(ctx, "U", 20); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if snaps.calls == calls {
		t.Fatalf("result computed before the invalidation was served from cache")
	}

	// 新版本的结果正常命中
	calls = snaps.calls
	if _, err := svc.Recommend(ctx, "U", 20); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if snaps.calls != calls {
		t.Fatalf("cache miss on current version: snapshot calls %d -> %d", calls, snaps.calls)
	}
	if _, ok := cache.data["recommend:U:1:20"]; !ok {
		t.Fatalf("result not stored under version 1, keys=%v", cache.data)
	}
}

func TestCorruptedVersionSkipsCache(t *testing.T) {
	engine, snaps := newScenarioA()
	cache := newMemCache()
	cache.data[myredis.RecommendVersionKey("U")] = "not-a-number"
	svc := NewRecommendService(engine, cache, nil, defaultConf())
	ctx := context.Background()

	_, _ = svc.Recommend(ctx, "U", 20)
	calls := snaps.calls
	_, _ = svc.Recommend(ctx, "U", 20)
	if snaps.calls == calls {
		t.Fatalf("served from cache with an unreadable version")
	}
	if len(cache.data) != 1 {
		t.Fatalf("wrote cache entries without a version: %v", cache.data)
	}
}
