// Package recommend 根据好友片单为用户生成可解释的影片推荐
package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"

	"cine_social_server/internal/dto/respond"
	"cine_social_server/internal/service/watchlist"
	"cine_social_server/pkg/constants"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	emptyFriendsHint = "还没有好友，添加好友后就能看到他们想看的电影"
	scoreEpsilon     = 1e-9
)

// FriendLister 读取用户已确认的好友
type FriendLister interface {
	ListFriends(ctx context.Context, userId string) ([]respond.FriendRespond, error)
}

// Engine 推荐引擎
//
// 对每个好友 F：similarity(F) = |W_u ∩ W_F| / max(|W_u|, 1)，
// F 片单中每部用户自己没加入的影片得分 += 1 + similarity(F)。
// 按得分降序、影片 id 升序排序后截取 limit 条。
type Engine struct {
	friends   FriendLister
	snapshots watchlist.SnapshotProvider
	maxFanout int
}

// NewEngine maxFanout 为并发拉取片单的上限，<= 0 时取默认值
func NewEngine(friends FriendLister, snapshots watchlist.SnapshotProvider, maxFanout int) *Engine {
	if maxFanout <= 0 {
		maxFanout = constants.RECOMMEND_MAX_FANOUT
	}
	return &Engine{friends: friends, snapshots: snapshots, maxFanout: maxFanout}
}

// ClampLimit <= 0 取默认值，超过上限截断
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return constants.RECOMMEND_DEFAULT_LIMIT
	case limit > constants.RECOMMEND_MAX_LIMIT:
		return constants.RECOMMEND_MAX_LIMIT
	}
	return limit
}

type candidate struct {
	itemId  int64
	score   float64
	friends []int // 贡献好友在好友列表中的下标，按好友顺序
}

// Recommend 只有读取好友列表失败时返回错误；没有好友、片单读取失败都按正常结果处理
func (e *Engine) Recommend(ctx context.Context, userId string, limit int) (*respond.RecommendRespond, error) {
	limit = ClampLimit(limit)

	friends, err := e.friends.ListFriends(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(friends) == 0 {
		return &respond.RecommendRespond{Items: []respond.RecommendItemRespond{}, Hint: emptyFriendsHint}, nil
	}

	lists := e.fetchSnapshots(ctx, userId, friends)
	ranked := rank(lists[0], lists[1:])
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	items := make([]respond.RecommendItemRespond, 0, len(ranked))
	for _, c := range ranked {
		items = append(items, explain(c, friends))
	}
	return &respond.RecommendRespond{Items: items}, nil
}

// fetchSnapshots 并发读取用户本人（下标 0）和每个好友的片单
// 单个读取失败记为空片单，不影响其它读取
func (e *Engine) fetchSnapshots(ctx context.Context, userId string, friends []respond.FriendRespond) [][]int64 {
	lists := make([][]int64, len(friends)+1)
	var g errgroup.Group
	g.SetLimit(e.maxFanout)

	fetch := func(slot int, uid string) {
		g.Go(func() error {
			ids, err := e.snapshots.Get(ctx, uid)
			if err != nil {
				zap.L().Warn("watchlist snapshot unavailable, treated as empty",
					zap.String("user_id", uid),
					zap.String("requester_id", userId),
					zap.Error(err),
				)
				return nil
			}
			lists[slot] = ids
			return nil
		})
	}
	fetch(0, userId)
	for i := range friends {
		fetch(i+1, friends[i].UserId)
	}
	_ = g.Wait()
	return lists
}

// rank 聚合候选影片并排序
func rank(own []int64, friendLists [][]int64) []*candidate {
	ownSet := toSet(own)
	denominator := float64(max(len(ownSet), 1))

	byItem := make(map[int64]*candidate)
	for fi, list := range friendLists {
		items := dedupe(list)
		shared := 0
		for _, id := range items {
			if _, ok := ownSet[id]; ok {
				shared++
			}
		}
		weight := 1 + float64(shared)/denominator

		for _, id := range items {
			if _, ok := ownSet[id]; ok {
				continue
			}
			c, ok := byItem[id]
			if !ok {
				c = &candidate{itemId: id}
				byItem[id] = c
			}
			c.score += weight
			c.friends = append(c.friends, fi)
		}
	}

	ranked := make([]*candidate, 0, len(byItem))
	for _, c := range byItem {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if math.Abs(ranked[i].score-ranked[j].score) > scoreEpsilon {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].itemId < ranked[j].itemId
	})
	return ranked
}

// explain 生成推荐理由；展示的好友最多 5 个，得分使用全部好友
func explain(c *candidate, friends []respond.FriendRespond) respond.RecommendItemRespond {
	shown := c.friends
	if len(shown) > constants.RECOMMEND_MAX_PROVENANCE {
		shown = shown[:constants.RECOMMEND_MAX_PROVENANCE]
	}
	ids := make([]string, 0, len(shown))
	for _, fi := range shown {
		ids = append(ids, friends[fi].UserId)
	}

	var reason string
	switch len(c.friends) {
	case 1:
		reason = fmt.Sprintf("%s 也想看", displayName(friends[c.friends[0]]))
	case 2:
		reason = fmt.Sprintf("%s 和 %s 都想看", displayName(friends[c.friends[0]]), displayName(friends[c.friends[1]]))
	default:
		reason = fmt.Sprintf("%d 位好友都想看", len(c.friends))
	}

	return respond.RecommendItemRespond{
		ItemId:                c.itemId,
		Score:                 math.Round(c.score*100) / 100,
		Reasons:               []string{reason},
		ContributingFriendIds: ids,
	}
}

func displayName(f respond.FriendRespond) string {
	if f.Nickname != "" {
		return f.Nickname
	}
	return f.UserId
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// dedupe 去重并保持原顺序
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
