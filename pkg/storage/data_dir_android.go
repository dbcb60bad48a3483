//go:build android

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDataDir 确保 Android 上的调优数据目录存在并可写
//
// gdata 在 Android 上把数据放在 /data/data/{package}/ 下，但不会预先创建子目录，
// 必须在 gdata.Open 之前调用。
//
// 返回：
//   - error: 无法识别包名、创建目录失败或目录不可写
func EnsureDataDir() error {
	dir, err := androidDataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create tuning directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("navcam"), 0644); err != nil {
		return fmt.Errorf("tuning directory %s is not writable: %w", dir, err)
	}
	os.Remove(probe)
	return nil
}

func androidDataDir() (string, error) {
	pkg, err := androidPackage()
	if err != nil {
		return "", fmt.Errorf("detect android package: %w", err)
	}
	return filepath.Join("/data/data", pkg, "saves"), nil
}

// androidPackage 从 /proc/self/cmdline 读取进程名，即应用包名
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(strings.ReplaceAll(string(data), "\x00", ""))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
