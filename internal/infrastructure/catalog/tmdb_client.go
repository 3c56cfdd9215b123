package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cine_social_server/pkg/errorx"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// errNotFound 影片不存在，不计入熔断失败
var errNotFound = errorx.New(errorx.CodeNotFound, "影片不存在")

// tmdbMovie TMDB /movie/{id} 响应中用到的字段
type tmdbMovie struct {
	Id          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

// TMDBClient TMDB 兼容接口客户端
// 请求经过令牌桶限流，连续失败后熔断，熔断期间直接返回 Unavailable
type TMDBClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[*Metadata]
}

func NewTMDBClient(baseURL, apiKey string, timeout time.Duration) *TMDBClient {
	return &TMDBClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		// TMDB 限制约 40 req/s
		limiter: rate.NewLimiter(rate.Limit(40), 40),
		cb: gobreaker.NewCircuitBreaker[*Metadata](gobreaker.Settings{
			Name:        "tmdb-api",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errNotFound) || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				zap.L().Warn("circuit breaker state change",
					zap.String("name", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

func (c *TMDBClient) GetMetadata(ctx context.Context, itemId int64) (*Metadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeUnavailable, "影片服务限流等待超时")
	}
	md, err := c.cb.Execute(func() (*Metadata, error) {
		return c.fetch(ctx, itemId)
	})
	if err == nil {
		return md, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errorx.Wrap(err, errorx.CodeUnavailable, "影片服务暂不可用")
	}
	return nil, err
}

func (c *TMDBClient) fetch(ctx context.Context, itemId int64) (*Metadata, error) {
	endpoint := c.baseURL + "/movie/" + strconv.FormatInt(itemId, 10) + "?" + url.Values{"api_key": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "构造影片请求失败")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeUnavailable, "请求影片 %d", itemId)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errorx.Wrapf(errNotFound, errorx.CodeNotFound, "影片 %d 不存在", itemId)
	case resp.StatusCode != http.StatusOK:
		return nil, errorx.Wrapf(fmt.Errorf("status %d", resp.StatusCode), errorx.CodeUnavailable, "请求影片 %d", itemId)
	}

	var movie tmdbMovie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeUnavailable, "解析影片 %d", itemId)
	}
	return &Metadata{
		ItemId:     itemId,
		Title:      movie.Title,
		PosterPath: movie.PosterPath,
		Rating:     movie.VoteAverage,
	}, nil
}
