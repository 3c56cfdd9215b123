package request

// SendFriendRequest 发送好友申请
// 使用位置:
//   - handler/friendship_handler.go: SendRequest
type SendFriendRequest struct {
	// RecipientId 被申请人用户ID；申请人取自登录态
	RecipientId string `json:"recipient_id" binding:"required,max=20"`
}

// RelationshipActionRequest 对一条好友关系执行同意/拒绝/删除
// 使用位置:
//   - handler/friendship_handler.go: AcceptRequest, RejectRequest, RemoveFriendship
type RelationshipActionRequest struct {
	RelationshipId string `json:"relationship_id" binding:"required,max=20"`
}
