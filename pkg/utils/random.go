package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateLinkCode 生成 URL 安全的随机短码
// n 为随机字节数，编码后约 4n/3 个字符；8 字节对应 11 字符，
// 碰撞概率低到可以用"重试直到唯一"处理
func GenerateLinkCode(n int) (string, error) {
	if n <= 0 {
		n = 8
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	// 不带填充符 =，可直接拼进 URL
	return base64.RawURLEncoding.EncodeToString(b), nil
}
