//go:build !android

package storage

// EnsureDataDir 确保调优数据目录可用
// 桌面平台上 gdata 会自行创建目录，这里什么也不做
func EnsureDataDir() error {
	return nil
}
