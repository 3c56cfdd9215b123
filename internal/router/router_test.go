package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cine_social_server/internal/dao/memory"
	"cine_social_server/internal/handler"
	"cine_social_server/internal/model"
	"cine_social_server/internal/service"
	"cine_social_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwt.Init("0123456789abcdef0123456789abcdef", 30)

	repos := memory.NewRepositories()
	for _, uid := range []string{"A", "B"} {
		if err := repos.User.Create(context.Background(), &model.UserInfo{Uuid: uid, Nickname: uid}); err != nil {
			t.Fatal(err)
		}
	}
	svc := service.NewServices(service.Deps{Repos: repos})
	engine := gin.New()
	NewRouter(handler.NewHandlers(svc, nil)).RegisterRoutes(engine)
	return engine
}

func TestPing(t *testing.T) {
	r := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("ping: %d %s", w.Code, w.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(t)
	for _, path := range []string{"/friend/list", "/friend/pending", "/recommend"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s without token: status %d", path, w.Code)
		}
	}
}

func TestSendRequestWithToken(t *testing.T) {
	r := newTestEngine(t)
	token, err := jwt.GenerateAccessToken("A")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/friend/request", strings.NewReader(`{"recipient_id":"B"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"code":1000`) || !strings.Contains(body, `"requester_id":"A"`) {
		t.Fatalf("unexpected body %s", body)
	}
}
