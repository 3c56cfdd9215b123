package respond

// FriendRespond 好友列表中的一项
// 使用位置:
//   - internal/service/friendship/service.go: ListFriends
//   - internal/service/recommend/engine.go: 推荐理由中的好友昵称
type FriendRespond struct {
	UserId       string `json:"user_id"`
	Nickname     string `json:"nickname"`
	Avatar       string `json:"avatar"`
	FriendshipId string `json:"friendship_id"`
	FriendsSince string `json:"friends_since"`
}
