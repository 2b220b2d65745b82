// Package fonts 查找并读取渲染所需的字体文件。
// 档案内容以中文为主，默认在常见的系统位置查找 CJK 字体。
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvFont 指定正文字体文件的环境变量，优先于系统字体。
const EnvFont = "DOSSIER_FONT"

// ErrNotFound 表示所有候选位置都没有可用字体。
var ErrNotFound = errors.New("fonts: 未找到可用字体")

// SystemCandidates 是按优先级排列的系统 CJK 字体路径。
var SystemCandidates = []string{
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/wqy-microhei/wqy-microhei.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/STHeiti Medium.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	`C:\Windows\Fonts\msyh.ttc`,
	`C:\Windows\Fonts\simhei.ttf`,
}

// Locate 返回第一个存在的字体文件。顺序：explicit、$DOSSIER_FONT、SystemCandidates。
func Locate(explicit ...string) (string, error) {
	var candidates []string
	for _, p := range explicit {
		if strings.TrimSpace(p) != "" {
			candidates = append(candidates, p)
		}
	}
	if env := strings.TrimSpace(os.Getenv(EnvFont)); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, SystemCandidates...)
	for _, p := range candidates {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", ErrNotFound
}

// Load 读取字体文件，拒绝不支持的扩展名。
func Load(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc", ".woff", ".woff2":
	default:
		return nil, fmt.Errorf("fonts: 不支持的字体格式 %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fonts: 读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}
