package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"MovieInsight/src/processor"
)

// SaveToExcel 将榜单保存为xlsx文件
func SaveToExcel(filePath string, top []processor.Movie) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"

	// 写入列名
	for i, name := range tableHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}

	// 写入数据
	for rowIdx, m := range top {
		for colIdx, val := range tableRow(m) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	// 保存文件
	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("保存Excel文件失败: %w", err)
	}
	return nil
}
