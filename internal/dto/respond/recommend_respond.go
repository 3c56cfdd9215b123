package respond

// RecommendItemRespond 一条推荐
// Title/PosterPath/Rating 来自影片目录服务，服务不可用时为空
type RecommendItemRespond struct {
	ItemId                int64    `json:"item_id"`
	Score                 float64  `json:"score"`
	Reasons               []string `json:"reasons"`
	ContributingFriendIds []string `json:"contributing_friend_ids"`
	Title                 string   `json:"title,omitempty"`
	PosterPath            string   `json:"poster_path,omitempty"`
	Rating                float64  `json:"rating,omitempty"`
}

// RecommendRespond 推荐结果；没有好友时 Items 为空并给出 Hint
// 使用位置:
//   - internal/service/recommend/service.go: Recommend
type RecommendRespond struct {
	Items []RecommendItemRespond `json:"items"`
	Hint  string                 `json:"hint,omitempty"`
}
