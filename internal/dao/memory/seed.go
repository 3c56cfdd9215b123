package memory

import (
	"context"
	"fmt"

	"cine_social_server/internal/config"
	"cine_social_server/internal/dao/mysql/repository"
	"cine_social_server/internal/model"
)

// Seed 写入预置用户和片单，memory 模式下没有注册入口，只能靠它准备数据
func Seed(ctx context.Context, repos *repository.Repositories, users []config.SeedUser) error {
	for _, su := range users {
		if su.Uuid == "" || su.Nickname == "" {
			return fmt.Errorf("seed user %+v: uuid and nickname are required", su)
		}
		if err := repos.User.Create(ctx, &model.UserInfo{Uuid: su.Uuid, Nickname: su.Nickname, Avatar: su.Avatar}); err != nil {
			return fmt.Errorf("seed user %s: %w", su.Uuid, err)
		}
		for _, itemId := range su.Watchlist {
			if err := repos.Watchlist.Add(ctx, su.Uuid, itemId); err != nil {
				return fmt.Errorf("seed watchlist of %s: %w", su.Uuid, err)
			}
		}
	}
	return nil
}
