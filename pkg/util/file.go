package util

import (
	"fmt"
	"path"
	"runtime"
	"strings"
)

// GetCurrentAbPathByCaller 获取当前执行文件绝对路径（go run）
func GetCurrentAbPathByCaller(skip int) string {
	var abPath string
	_, filename, _, ok := runtime.Caller(skip)
	if ok {
		abPath = path.Dir(filename)
	}
	return abPath
}

func AbPath(file string) string {

	if strings.HasPrefix(file, "/") {
		return file
	}

	return fmt.Sprintf("%s/%s", GetCurrentAbPathByCaller(2), file)
}
