package processor

import (
	"fmt"
	"strings"
)

// SchemaError 表示原始数据为空或缺少预期的列。
// 属于致命错误：整个运行中止，不产生任何输出文件。
type SchemaError struct {
	Source  string   // 数据来源名，例如 "basics"、"ratings"
	Missing []string // 缺少的列名，为空表示数据本身为空
}

func (e *SchemaError) Error() string {
	if e == nil {
		return "schema error"
	}
	if len(e.Missing) == 0 {
		return fmt.Sprintf("数据源 %s 为空或没有表头", e.Source)
	}
	return fmt.Sprintf("数据源 %s 缺少列: %s", e.Source, strings.Join(e.Missing, ", "))
}

// DataIntegrityError 表示同一数据源内出现重复ID，违反唯一键假设。
// 不允许静默取其中一行，必须中止运行。
type DataIntegrityError struct {
	Source string
	ID     string
}

func (e *DataIntegrityError) Error() string {
	if e == nil {
		return "data integrity error"
	}
	return fmt.Sprintf("数据源 %s 存在重复ID %s", e.Source, e.ID)
}
