package handler

import (
	"net/http"

	"cine_social_server/internal/dto/request"
	"cine_social_server/internal/infrastructure/middleware"
	"cine_social_server/internal/infrastructure/mq"
	"cine_social_server/internal/service"
	"cine_social_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// FriendshipHandler 好友关系请求处理器
// 操作者一律取自 JWT 登录态，请求体里只有对方或关系的 id
type FriendshipHandler struct {
	friendSvc service.FriendshipService
	sink      mq.NotificationSink
}

func NewFriendshipHandler(friendSvc service.FriendshipService, sink mq.NotificationSink) *FriendshipHandler {
	return &FriendshipHandler{friendSvc: friendSvc, sink: sink}
}

// actingUser 取出鉴权中间件写入的用户 id
func actingUser(c *gin.Context) (string, bool) {
	userId := c.GetString(middleware.ContextUserKey)
	if userId == "" {
		c.JSON(http.StatusOK, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "未登录",
			"data": nil,
		})
		return "", false
	}
	return userId, true
}

// SendRequest 发送好友申请
// POST /friend/request
// 请求体: request.SendFriendRequest
// 响应: respond.RelationshipRespond
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	userId, ok := actingUser(c)
	if !ok {
		return
	}
	var req request.SendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	data, err := h.friendSvc.SendRequest(c.Request.Context(), userId, req.RecipientId)
	if err != nil {
		HandleError(c, err)
		return
	}

	mq.NotifyAsync(h.sink, mq.NewNotification(data.RecipientId, mq.NotifyFriendRequest, map[string]string{
		"relationship_id": data.RelationshipId,
		"from_user_id":    data.RequesterId,
	}))
	HandleSuccess(c, data)
}

// AcceptRequest 同意好友申请
// POST /friend/accept
// 请求体: request.RelationshipActionRequest
// 响应: respond.RelationshipRespond
func (h *FriendshipHandler) AcceptRequest(c *gin.Context) {
	userId, ok := actingUser(c)
	if !ok {
		return
	}
	var req request.RelationshipActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	data, err := h.friendSvc.AcceptRequest(c.Request.Context(), req.RelationshipId, userId)
	if err != nil {
		HandleError(c, err)
		return
	}

	// 通知申请人：对方已同意
	mq.NotifyAsync(h.sink, mq.NewNotification(data.RequesterId, mq.NotifyFriendAccepted, map[string]string{
		"relationship_id": data.RelationshipId,
		"from_user_id":    data.RecipientId,
	}))
	HandleSuccess(c, data)
}

// RejectRequest 拒绝好友申请
// POST /friend/reject
func (h *FriendshipHandler) RejectRequest(c *gin.Context) {
	userId, ok := actingUser(c)
	if !ok {
		return
	}
	var req request.RelationshipActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.RejectRequest(c.Request.Context(), req.RelationshipId, userId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveFriendship 删除好友（或撤回自己发出的申请）
// POST /friend/remove
func (h *FriendshipHandler) RemoveFriendship(c *gin.Context) {
	userId, ok := actingUser(c)
	if !ok {
		return
	}
	var req request.RelationshipActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.friendSvc.RemoveFriendship(c.Request.Context(), req.RelationshipId, userId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListFriends 好友列表
// GET /friend/list
// 响应: []respond.FriendRespond
func (h *FriendshipHandler) ListFriends(c *gin.Context) {
	userId, ok := actingUser(c)
	if !ok {
		return
	}
	data, err := h.friendSvc.ListFriends(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListPendingRequests 待处理的好友申请（收到的和发出的）
// GET /friend/pending
// 响应: respond.PendingRequestsRespond
func (h *FriendshipHandler) ListPendingRequests(c *gin.Context) {
	userId, ok := actingUser(c)
	if !ok {
		return
	}
	data, err := h.friendSvc.ListPendingRequests(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
