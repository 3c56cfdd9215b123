package request

// RecommendRequest 获取推荐列表
// limit 不传或 <= 0 时取默认值，超过上限时截断
type RecommendRequest struct {
	Limit int `form:"limit"`
}
