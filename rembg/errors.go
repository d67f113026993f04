package rembg

import (
	"errors"
	"fmt"
)

var ErrInputNotFound = errors.New("input not found")

// NotFoundError 输入文件不存在，此时不做任何处理也不写输出
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Input file %s not found", e.Path)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrInputNotFound
}

// ProcessError 除输入缺失以外的所有失败 (stat/decode/remove/encode/write)
type ProcessError struct {
	Op   string
	Path string
	Err  error
}

func (e *ProcessError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

const statusSuccess = "Success: Image processing complete"

// Status 把一次处理的结果转成唯一的一行 stdout 状态
func Status(err error) string {
	if err == nil {
		return statusSuccess
	}

	var pe *ProcessError
	if errors.As(err, &pe) && pe.Err != nil {
		return "Error: " + pe.Err.Error()
	}
	return "Error: " + err.Error()
}
