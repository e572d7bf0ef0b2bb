package pkg

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// CheckFileExist 检查文件是否存在
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadInput 读取输入: "-" 表示标准输入, 否则读取文件
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	exist, err := CheckFileExist(path)
	if err != nil {
		return nil, fmt.Errorf("check file exist: %w", err)
	}
	if !exist {
		return nil, fmt.Errorf("input file %q not exist", path)
	}
	return os.ReadFile(path)
}

// ReadQuery 读取查询字符串: 优先使用参数, 其次是输入文件, 去掉结尾换行
func ReadQuery(args []string, path string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if path == "" {
		path = "-"
	}
	data, err := ReadInput(path, stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
