package constants

const (
	REDIS_TIMEOUT = 1 // redis 连接检测超时（秒）

	RECOMMEND_DEFAULT_LIMIT  = 20  // 推荐默认条数
	RECOMMEND_MAX_LIMIT      = 50  // 推荐条数上限
	RECOMMEND_MAX_FANOUT     = 200 // 好友片单并发拉取上限
	RECOMMEND_MAX_PROVENANCE = 5   // 推荐理由中展示的好友数上限

	CACHE_WORKER_NUM    = 15   // 异步缓存任务 Worker 数量
	CACHE_TASK_BUF_SIZE = 3000 // 异步缓存任务缓冲区大小

	NOTIFY_TIMEOUT_SECONDS = 3 // 通知投递超时（秒）
)
