package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"deltahub/internal/service"
)

// WebhookRetrier 回调重投任务
// 首投失败或进程重启时落下的回调在这里补投，直到送达或超过尝试上限
type WebhookRetrier struct {
	webhookSvc *service.WebhookService
	Cron       *cron.Cron
}

func NewWebhookRetrier(webhookSvc *service.WebhookService) *WebhookRetrier {
	return &WebhookRetrier{
		webhookSvc: webhookSvc,
		Cron:       cron.New(cron.WithSeconds()),
	}
}

// Start 启动重投任务
func (t *WebhookRetrier) Start() {
	// 策略：每 2 分钟扫一轮未送达的回调
	_, err := t.Cron.AddFunc("0 0/2 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		t.Execute(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动 WebhookRetrier: %v", err)
	}

	t.Cron.Start()
	log.Println("WebhookRetrier 重投任务已启动 (每2分钟执行一次)")
}

// Execute 执行一轮重投 (由 Cron 定时触发)
func (t *WebhookRetrier) Execute(ctx context.Context) {
	succeeded, err := t.webhookSvc.RetryPending(ctx)
	if err != nil {
		log.Printf("[WebhookRetrier] 扫描待投递回调失败: %v", err)
		return
	}
	if succeeded > 0 {
		log.Printf("[WebhookRetrier] 本轮补投成功 %d 条", succeeded)
	}
}
