package redis

import (
	"strconv"
)

// 缓存 key 约定
//   recommend:<user_id>:<version>:<limit>  推荐结果
//   recommend_ver:<user_id>                推荐结果版本号，好友关系变更时自增
//   catalog:movie:<item_id>                影片元数据

// RecommendKey 某用户某个版本、某个 limit 下的推荐结果
// 版本号变了旧结果就不再被读到，计算期间发生的变更不会留下脏缓存
func RecommendKey(userId string, version int64, limit int) string {
	return "recommend:" + userId + ":" + strconv.FormatInt(version, 10) + ":" + strconv.Itoa(limit)
}

// RecommendVersionKey 某用户推荐结果的版本号，不匹配 RecommendPattern
func RecommendVersionKey(userId string) string {
	return "recommend_ver:" + userId
}

// RecommendPattern 某用户所有 limit 下的推荐结果，用于失效
func RecommendPattern(userId string) string {
	return "recommend:" + userId + ":*"
}

// CatalogKey 影片元数据
func CatalogKey(itemId int64) string {
	return "catalog:movie:" + strconv.FormatInt(itemId, 10)
}
