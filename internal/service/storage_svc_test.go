package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deltahub/internal/config"
)

func TestLocalStorageSaveImage(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewStorageService(&config.Config{
		StorageProvider: "local",
		StoragePath:     dir,
	})
	if err != nil {
		t.Fatalf("初始化存储失败: %v", err)
	}

	url, err := svc.SaveImage(context.Background(), []byte("fake-png-bytes"), ".png")
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	if !strings.HasPrefix(url, "/images/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("URL 形态错误: %s", url)
	}

	// 文件确实写到了磁盘上
	filename := strings.TrimPrefix(url, "/images/")
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("读取落盘文件失败: %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Errorf("文件内容不符: %s", data)
	}

	// 两次保存生成不同文件名
	url2, err := svc.SaveImage(context.Background(), []byte("x"), ".png")
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	if url2 == url {
		t.Error("uuid 派生的文件名不应重复")
	}
}

func TestStorageServiceNeverNil(t *testing.T) {
	// 不论哪个后端、配置多残缺，拿到的实例都必须可用，
	// 上传路径不允许因初始化失败而空指针
	cases := []*config.Config{
		{StorageProvider: "local", StoragePath: t.TempDir()},
		{StorageProvider: "s3"},
		{StorageProvider: "unknown", StoragePath: t.TempDir()},
	}
	for _, cfg := range cases {
		svc := NewStorageServiceOrLocal(cfg)
		if svc == nil || svc.provider == nil {
			t.Fatalf("%s: 存储实例不应为 nil", cfg.StorageProvider)
		}
	}
}

func TestSaveImageDefaultExt(t *testing.T) {
	svc, err := NewStorageService(&config.Config{
		StorageProvider: "local",
		StoragePath:     t.TempDir(),
	})
	if err != nil {
		t.Fatalf("初始化存储失败: %v", err)
	}

	// 缺扩展名时回落到 .jpg
	url, err := svc.SaveImage(context.Background(), []byte("x"), "")
	if err != nil {
		t.Fatalf("保存失败: %v", err)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("期望 .jpg 兜底, 实际 %s", url)
	}
}
