package respond

// RelationshipRespond 好友关系
// 使用位置:
//   - internal/service/friendship/service.go: SendRequest, AcceptRequest
type RelationshipRespond struct {
	RelationshipId string `json:"relationship_id"`
	RequesterId    string `json:"requester_id"`
	RecipientId    string `json:"recipient_id"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	AcceptedAt     string `json:"accepted_at,omitempty"`
}
