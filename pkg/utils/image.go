package utils

import (
	"mime"
	"path/filepath"
	"strings"
)

// ContentTypeByExt 按文件扩展名推断 Content-Type
// 识别不了的一律按二进制流返回
func ContentTypeByExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
