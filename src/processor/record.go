package processor

// Title 标题元数据经过类型规范化后的记录
type Title struct {
	ID         string
	Name       string
	Year       int // HasYear 为 false 时无意义
	HasYear    bool
	Runtime    int // 分钟，HasRuntime 为 false 时无意义
	HasRuntime bool
	Genres     []string // 最多3个，缺失时为空
}

// Rating 评分数据记录
type Rating struct {
	ID     string
	Rating float64 // 0.0 - 10.0
	Votes  int
}

// Movie 标题与评分按ID内连接后的完整记录
// 只有两侧都出现的ID才会生成该记录，每个ID至多一条
type Movie struct {
	ID         string
	Title      string
	Year       int
	HasYear    bool
	Runtime    int
	HasRuntime bool
	Genres     []string
	Rating     float64
	Votes      int
}

// Decade 年份所属年代（向下取整到10的倍数）
// 调用方需保证 HasYear 为 true
func (m Movie) Decade() int {
	if m.Year < 0 {
		return ((m.Year - 9) / 10) * 10
	}
	return (m.Year / 10) * 10
}

// InGenre 判断影片是否带有指定类型标签
func (m Movie) InGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
