package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"deltahub/internal/repository"
)

// OrphanReaper 悬空归因行回收任务
// 访问上报是宽松的：商品或博主被删后留下的归因行由这里定期清掉
type OrphanReaper struct {
	analyticsRepo repository.AnalyticsRepository
	Cron          *cron.Cron
}

func NewOrphanReaper(analyticsRepo repository.AnalyticsRepository) *OrphanReaper {
	return &OrphanReaper{
		analyticsRepo: analyticsRepo,
		Cron:          cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动回收任务
func (t *OrphanReaper) Start() {
	// 策略：每小时整点回收一次
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		t.Execute(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动 OrphanReaper: %v", err)
	}

	t.Cron.Start()
	log.Println("OrphanReaper 回收任务已启动 (每小时执行一次)")
}

// Execute 执行一次回收 (由 Cron 定时触发)
func (t *OrphanReaper) Execute(ctx context.Context) {
	deleted, err := t.analyticsRepo.DeleteOrphans(ctx)
	if err != nil {
		log.Printf("[OrphanReaper] 回收失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[OrphanReaper] 已清理 %d 条悬空归因记录", deleted)
	}
}
