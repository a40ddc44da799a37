package methods

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// EnsureCachesExist 确保构建目录存在并返回完整路径
func EnsureCachesExist(root string, foldName string) (string, error) {
	dest := filepath.Join(root, foldName)
	if err := os.MkdirAll(dest, os.ModePerm); err != nil {
		return "", err
	}
	return dest, nil
}

// GetLatestStamp 扫描形如 <prefix>-<毫秒时间戳> 的构建目录，返回最新时间戳
// 没有匹配目录时返回 0
func GetLatestStamp(root string, prefix string) (int64, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	var latest int64
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix+"-") {
			continue
		}
		stamp, err := strconv.ParseInt(strings.TrimPrefix(name, prefix+"-"), 10, 64)
		if err != nil {
			continue
		}
		if stamp > latest {
			latest = stamp
		}
	}
	return latest, nil
}

// CleanStaleBuilds 清理过期的构建目录和 zip 包
// 目录名末段必须是毫秒时间戳，解析失败的条目跳过
func CleanStaleBuilds(root string, maxAge time.Duration) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	cutoff := time.Now().Add(-maxAge).UnixMilli()
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".zip")
		idx := strings.LastIndex(name, "-")
		stampPart := name
		if idx >= 0 {
			stampPart = name[idx+1:]
		}
		stamp, err := strconv.ParseInt(stampPart, 10, 64)
		if err != nil || stamp >= cutoff {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
