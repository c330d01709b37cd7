package utils

import (
	"strings"
	"testing"
)

func TestGenerateLinkCode(t *testing.T) {
	code, err := GenerateLinkCode(8)
	if err != nil {
		t.Fatalf("生成短码失败: %v", err)
	}
	// 8 字节 base64 无填充编码为 11 字符
	if len(code) != 11 {
		t.Errorf("期望 11 字符, 实际 %d: %s", len(code), code)
	}
	if strings.ContainsAny(code, "+/=") {
		t.Errorf("短码必须是 URL 安全的: %s", code)
	}

	// 非法长度回落到默认值
	code, err = GenerateLinkCode(0)
	if err != nil || len(code) != 11 {
		t.Errorf("默认长度错误: %s %v", code, err)
	}

	// 抽样检查不重复
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		c, err := GenerateLinkCode(8)
		if err != nil {
			t.Fatalf("生成短码失败: %v", err)
		}
		if seen[c] {
			t.Fatalf("短码重复: %s", c)
		}
		seen[c] = true
	}
}

func TestContentTypeByExt(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":  "image/jpeg",
		"photo.JPEG": "image/jpeg",
		"logo.png":   "image/png",
		"anim.gif":   "image/gif",
		"pic.webp":   "image/webp",
		"blob.xyz9q": "application/octet-stream",
	}
	for name, want := range cases {
		if got := ContentTypeByExt(name); got != want {
			t.Errorf("%s: 期望 %s, 实际 %s", name, want, got)
		}
	}
}
