package respond

// PendingRequestRespond 一条待处理的好友申请，UserId 为对方
type PendingRequestRespond struct {
	RelationshipId string `json:"relationship_id"`
	UserId         string `json:"user_id"`
	Nickname       string `json:"nickname"`
	Avatar         string `json:"avatar"`
	CreatedAt      string `json:"created_at"`
}

// PendingRequestsRespond 收到的和发出的待处理申请，均按时间倒序
// 使用位置:
//   - internal/service/friendship/service.go: ListPendingRequests
type PendingRequestsRespond struct {
	Received []PendingRequestRespond `json:"received"`
	Sent     []PendingRequestRespond `json:"sent"`
}
