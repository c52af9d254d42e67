package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"MovieInsight/src/processor"
)

// 输出表列顺序，与CSV和XLSX共用；不含ID列
var tableHeader = []string{"Title", "Rating", "Year", "Runtime", "Votes", "Genres"}

// tableRow 将一条榜单记录转成输出行
// 未知年份和缺失片长输出为空单元格
func tableRow(m processor.Movie) []string {
	year := ""
	if m.HasYear {
		year = strconv.Itoa(m.Year)
	}
	runtime := ""
	if m.HasRuntime {
		runtime = strconv.Itoa(m.Runtime)
	}

	return []string{
		m.Title,
		strconv.FormatFloat(m.Rating, 'f', 1, 64),
		year,
		runtime,
		strconv.Itoa(m.Votes),
		strings.Join(m.Genres, ","),
	}
}

// WriteCSV 将榜单写为CSV文件，每次运行整体覆盖
func WriteCSV(filePath string, top []processor.Movie) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("创建CSV文件失败: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(tableHeader); err != nil {
		f.Close()
		return err
	}
	for _, m := range top {
		if err := w.Write(tableRow(m)); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("写CSV失败: %w", err)
	}
	return f.Close()
}
