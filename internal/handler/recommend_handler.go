package handler

import (
	"cine_social_server/internal/dto/request"
	"cine_social_server/internal/service"

	"github.com/gin-gonic/gin"
)

// RecommendHandler 推荐请求处理器
type RecommendHandler struct {
	recommendSvc service.RecommendService
}

func NewRecommendHandler(recommendSvc service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommendSvc: recommendSvc}
}

// Recommend 好友想看的电影推荐
// GET /recommend?limit=20
// 响应: respond.RecommendRespond
func (h *RecommendHandler) Recommend(c *gin.Context) {
	userId, ok := actingUser(c)
	if !ok {
		return
	}
	var req request.RecommendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	data, err := h.recommendSvc.Recommend(c.Request.Context(), userId, req.Limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
