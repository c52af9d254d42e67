// reader.go
package file

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"

	"MovieInsight/src/config"
)

// ReadTSV 将制表符分隔的表格数据读入DataFrame。
// 所有列保持字符串类型，类型转换由后续规范化阶段显式完成；
// na 哨兵值（IMDb数据集为 \N）读入时即标记为缺失。
// 空输入返回空DataFrame而不是错误，由模式校验统一报告。
func ReadTSV(r io.Reader, na string) (dataframe.DataFrame, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err == io.EOF {
		return dataframe.New(), nil
	}

	df := dataframe.ReadCSV(br,
		dataframe.WithDelimiter('\t'),
		dataframe.HasHeader(true),
		dataframe.WithLazyQuotes(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{na, ""}),
	)
	if df.Err != nil {
		return dataframe.New(), fmt.Errorf("解析TSV失败: %w", df.Err)
	}
	return df, nil
}

// ReadSnapshot 读取本地数据快照，按扩展名分派：
// .gz 先解压，.xlsx 走Excel读取，其余按TSV处理
func ReadSnapshot(path, na string) (dataframe.DataFrame, error) {
	switch {
	case strings.EqualFold(filepath.Ext(path), ".gz"):
		f, err := os.Open(path)
		if err != nil {
			return dataframe.New(), fmt.Errorf("打开快照失败: %w", err)
		}
		defer f.Close()

		gz, err := gzip.NewReader(f)
		if err != nil {
			return dataframe.New(), fmt.Errorf("解压快照失败: %w", err)
		}
		defer gz.Close()
		return ReadTSV(gz, na)

	case strings.EqualFold(filepath.Ext(path), ".xlsx"):
		return readXLSX(path, na)

	default:
		f, err := os.Open(path)
		if err != nil {
			return dataframe.New(), fmt.Errorf("打开快照失败: %w", err)
		}
		defer f.Close()
		return ReadTSV(f, na)
	}
}

// readXLSX 读取xlsx快照的第一个工作表
func readXLSX(path, na string) (dataframe.DataFrame, error) {
	xlFile, err := xlsx.OpenFile(path)
	if err != nil {
		return dataframe.New(), fmt.Errorf("打开xlsx失败: %w", err)
	}

	if len(xlFile.Sheets) == 0 {
		return dataframe.New(), nil
	}
	return convertSheetToDataFrame(xlFile.Sheets[0], na), nil
}

// convertSheetToDataFrame 将xlsx.Sheet转换为dataframe.DataFrame
// 第一行是标题行，数据从第二行开始
func convertSheetToDataFrame(sheet *xlsx.Sheet, na string) dataframe.DataFrame {
	if len(sheet.Rows) == 0 {
		return dataframe.New()
	}

	// 获取列名
	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, cell.Value)
	}
	if len(headers) == 0 {
		return dataframe.New()
	}

	// 准备数据列
	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(sheet.Rows)-1)
	}

	// 填充数据
	for _, row := range sheet.Rows[1:] {
		for i := range headers {
			val := ""
			if i < len(row.Cells) {
				val = row.Cells[i].Value
			}
			if val == na {
				val = ""
			}
			columns[i] = append(columns[i], val)
		}
	}

	// 创建Series切片
	seriesList := make([]series.Series, len(headers))
	for i, colName := range headers {
		seriesList[i] = series.New(columns[i], series.String, colName)
	}

	return dataframe.New(seriesList...)
}

// 快照文件可识别的扩展名
var snapshotExts = []string{".gz", ".tsv", ".xlsx"}

// FindLatest 在目录内查找文件名包含keyword、扩展名可识别的最新文件
func FindLatest(dir, keyword string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("读取快照目录失败: %w", err)
	}

	var (
		latestPath string
		latestMod  int64
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.Contains(name, keyword) || !hasSnapshotExt(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latestPath == "" || info.ModTime().UnixNano() > latestMod {
			latestPath = filepath.Join(dir, name)
			latestMod = info.ModTime().UnixNano()
		}
	}

	if latestPath == "" {
		return "", fmt.Errorf("目录 %s 中没有包含 %q 的快照文件", dir, keyword)
	}
	return latestPath, nil
}

func hasSnapshotExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range snapshotExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Snapshot 以本地快照目录为数据源，实现离线重跑
type Snapshot struct {
	Dir  string
	Dcfg *config.DataConfig
}

// Titles 读取标题元数据快照（文件名包含 basics）
func (s *Snapshot) Titles() (dataframe.DataFrame, error) {
	path, err := FindLatest(s.Dir, "basics")
	if err != nil {
		return dataframe.New(), err
	}
	return ReadSnapshot(path, s.Dcfg.NA())
}

// Ratings 读取评分数据快照（文件名包含 ratings）
func (s *Snapshot) Ratings() (dataframe.DataFrame, error) {
	path, err := FindLatest(s.Dir, "ratings")
	if err != nil {
		return dataframe.New(), err
	}
	return ReadSnapshot(path, s.Dcfg.NA())
}
