package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cine_social_server/internal/dto/respond"
	"cine_social_server/internal/infrastructure/middleware"
	"cine_social_server/internal/infrastructure/mq"
	"cine_social_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

type stubFriendship struct {
	sendErr   error
	lastActor string
}

func (s *stubFriendship) SendRequest(_ context.Context, requesterId, recipientId string) (*respond.RelationshipRespond, error) {
	s.lastActor = requesterId
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &respond.RelationshipRespond{
		RelationshipId: "R1",
		RequesterId:    requesterId,
		RecipientId:    recipientId,
		Status:         "pending",
	}, nil
}

func (s *stubFriendship) AcceptRequest(_ context.Context, relationshipId, actingUserId string) (*respond.RelationshipRespond, error) {
	s.lastActor = actingUserId
	return &respond.RelationshipRespond{
		RelationshipId: relationshipId,
		RequesterId:    "A",
		RecipientId:    actingUserId,
		Status:         "accepted",
	}, nil
}

func (s *stubFriendship) RejectRequest(_ context.Context, _, actingUserId string) error {
	s.lastActor = actingUserId
	return errorx.ErrForbidden
}

func (s *stubFriendship) RemoveFriendship(_ context.Context, _, actingUserId string) error {
	s.lastActor = actingUserId
	return errors.New("connection reset")
}

func (s *stubFriendship) ListFriends(context.Context, string) ([]respond.FriendRespond, error) {
	return []respond.FriendRespond{{UserId: "B", Nickname: "bob"}}, nil
}

func (s *stubFriendship) ListPendingRequests(context.Context, string) (*respond.PendingRequestsRespond, error) {
	return &respond.PendingRequestsRespond{}, nil
}

type stubRecommend struct {
	gotUser  string
	gotLimit int
}

func (s *stubRecommend) Recommend(_ context.Context, userId string, limit int) (*respond.RecommendRespond, error) {
	s.gotUser = userId
	s.gotLimit = limit
	return &respond.RecommendRespond{Items: []respond.RecommendItemRespond{{ItemId: 7, Score: 1.5}}}, nil
}

// chanSink 把通知写进 channel，便于断言异步投递
type chanSink struct {
	ch chan mq.Notification
}

func (s *chanSink) Notify(_ context.Context, n mq.Notification) error {
	s.ch <- n
	return nil
}
func (s *chanSink) Close() error { return nil }

type envelope struct {
	Code int             `json:"code"`
	Msg  json.RawMessage `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func init() {
	gin.SetMode(gin.TestMode)
	if err := InitTrans("zh"); err != nil {
		panic(err)
	}
}

func newTestEngine(friend *stubFriendship, rec *stubRecommend, sink mq.NotificationSink) *gin.Engine {
	h := &Handlers{
		Friendship: NewFriendshipHandler(friend, sink),
		Recommend:  NewRecommendHandler(rec),
	}
	r := gin.New()
	// 模拟鉴权中间件：X-User 头即登录用户
	r.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-User"); uid != "" {
			c.Set(middleware.ContextUserKey, uid)
		}
		c.Next()
	})
	r.POST("/friend/request", h.Friendship.SendRequest)
	r.POST("/friend/accept", h.Friendship.AcceptRequest)
	r.POST("/friend/reject", h.Friendship.RejectRequest)
	r.POST("/friend/remove", h.Friendship.RemoveFriendship)
	r.GET("/friend/list", h.Friendship.ListFriends)
	r.GET("/recommend", h.Recommend.Recommend)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, user, body string) envelope {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: http status = %d", method, path, w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return env
}

func TestSendRequestNotifiesRecipient(t *testing.T) {
	friend := &stubFriendship{}
	sink := &chanSink{ch: make(chan mq.Notification, 1)}
	r := newTestEngine(friend, &stubRecommend{}, sink)

	env := do(t, r, http.MethodPost, "/friend/request", "A", `{"recipient_id":"B"}`)
	if env.Code != errorx.CodeSuccess {
		t.Fatalf("code = %d, msg = %s", env.Code, env.Msg)
	}
	if friend.lastActor != "A" {
		t.Fatalf("requester = %q, want the logged-in user", friend.lastActor)
	}

	select {
	case n := <-sink.ch:
		if n.RecipientId != "B" || n.Type != mq.NotifyFriendRequest || n.Payload["relationship_id"] != "R1" {
			t.Fatalf("unexpected notification %+v", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification delivered")
	}
}

func TestAcceptNotifiesRequester(t *testing.T) {
	sink := &chanSink{ch: make(chan mq.Notification, 1)}
	r := newTestEngine(&stubFriendship{}, &stubRecommend{}, sink)

	env := do(t, r, http.MethodPost, "/friend/accept", "B", `{"relationship_id":"R9"}`)
	if env.Code != errorx.CodeSuccess {
		t.Fatalf("code = %d", env.Code)
	}
	select {
	case n := <-sink.ch:
		if n.RecipientId != "A" || n.Type != mq.NotifyFriendAccepted {
			t.Fatalf("unexpected notification %+v", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification delivered")
	}
}

func TestFailedSendDoesNotNotify(t *testing.T) {
	friend := &stubFriendship{sendErr: errorx.ErrAlreadyFriends}
	sink := &chanSink{ch: make(chan mq.Notification, 1)}
	r := newTestEngine(friend, &stubRecommend{}, sink)

	env := do(t, r, http.MethodPost, "/friend/request", "A", `{"recipient_id":"B"}`)
	if env.Code != errorx.CodeAlreadyFriends {
		t.Fatalf("code = %d, want %d", env.Code, errorx.CodeAlreadyFriends)
	}
	select {
	case n := <-sink.ch:
		t.Fatalf("unexpected notification %+v", n)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestErrorMapping(t *testing.T) {
	r := newTestEngine(&stubFriendship{}, &stubRecommend{}, nil)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"business error keeps its code", "/friend/reject", errorx.CodeForbidden},
		{"unknown error becomes server busy", "/friend/remove", errorx.CodeServerBusy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := do(t, r, http.MethodPost, tt.path, "B", `{"relationship_id":"R1"}`)
			if env.Code != tt.want {
				t.Fatalf("code = %d, want %d", env.Code, tt.want)
			}
		})
	}
}

func TestDBErrorIsHidden(t *testing.T) {
	friend := &stubFriendship{sendErr: errorx.Wrap(errors.New("dial tcp 10.0.0.1:3306"), errorx.CodeDBError, "查询失败")}
	r := newTestEngine(friend, &stubRecommend{}, nil)

	env := do(t, r, http.MethodPost, "/friend/request", "A", `{"recipient_id":"B"}`)
	if env.Code != errorx.CodeServerBusy {
		t.Fatalf("code = %d, want %d", env.Code, errorx.CodeServerBusy)
	}
	if strings.Contains(string(env.Msg), "3306") {
		t.Fatalf("msg leaks internals: %s", env.Msg)
	}
}

func TestValidationErrorIsTranslated(t *testing.T) {
	r := newTestEngine(&stubFriendship{}, &stubRecommend{}, nil)

	env := do(t, r, http.MethodPost, "/friend/request", "A", `{}`)
	if env.Code != errorx.CodeInvalidParam {
		t.Fatalf("code = %d, want %d", env.Code, errorx.CodeInvalidParam)
	}
	var fields map[string]string
	if err := json.Unmarshal(env.Msg, &fields); err != nil {
		t.Fatalf("msg should be a field map, got %s", env.Msg)
	}
	if _, ok := fields["recipient_id"]; !ok {
		t.Fatalf("msg = %v, want an entry for recipient_id", fields)
	}
}

func TestMissingUserIsUnauthorized(t *testing.T) {
	r := newTestEngine(&stubFriendship{}, &stubRecommend{}, nil)

	env := do(t, r, http.MethodGet, "/friend/list", "", "")
	if env.Code != errorx.CodeUnauthorized {
		t.Fatalf("code = %d, want %d", env.Code, errorx.CodeUnauthorized)
	}
}

func TestRecommendPassesLimit(t *testing.T) {
	rec := &stubRecommend{}
	r := newTestEngine(&stubFriendship{}, rec, nil)

	env := do(t, r, http.MethodGet, "/recommend?limit=5", "A", "")
	if env.Code != errorx.CodeSuccess {
		t.Fatalf("code = %d", env.Code)
	}
	if rec.gotUser != "A" || rec.gotLimit != 5 {
		t.Fatalf("got user %q limit %d", rec.gotUser, rec.gotLimit)
	}
	var data respond.RecommendRespond
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Items) != 1 || data.Items[0].ItemId != 7 {
		t.Fatalf("data = %+v", data)
	}
}
