package redis

import (
	"path"
	"testing"
)

func TestRecommendPatternMatchesKeys(t *testing.T) {
	pattern := RecommendPattern("U1001")
	for _, limit := range []int{1, 20, 50} {
		key := RecommendKey("U1001", 3, limit)
		if ok, _ := path.Match(pattern, key); !ok {
			t.Fatalf("%s does not match %s", key, pattern)
		}
	}
	if ok, _ := path.Match(pattern, RecommendKey("U1002", 3, 20)); ok {
		t.Fatalf("pattern matched another user's key")
	}
	// 版本号不能被清理任务删掉，否则会回到旧版本
	if ok, _ := path.Match(pattern, RecommendVersionKey("U1001")); ok {
		t.Fatalf("pattern matched the version key")
	}
}

func TestRecommendKeyIncludesVersion(t *testing.T) {
	if got := RecommendKey("U1001", 7, 20); got != "recommend:U1001:7:20" {
		t.Fatalf("RecommendKey = %q", got)
	}
	if RecommendKey("U1001", 1, 20) == RecommendKey("U1001", 2, 20) {
		t.Fatalf("versions share a key")
	}
}

func TestCatalogKey(t *testing.T) {
	if got := CatalogKey(603); got != "catalog:movie:603" {
		t.Fatalf("CatalogKey = %q", got)
	}
}
