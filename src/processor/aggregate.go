package processor

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenreCount 某一类型标签在榜单内的出现次数
type GenreCount struct {
	Genre string
	Count int
}

// DecadeCount 某一年代的影片数量
type DecadeCount struct {
	Decade int
	Count  int
}

// YearMark 年份极值及对应影片（并列时取榜单中先出现的一部）
type YearMark struct {
	Year  int
	Title string
}

// Summary 榜单标量统计
type Summary struct {
	Count       int
	MeanRating  float64 // Count 为 0 时无意义
	MeanRuntime float64 // HasRuntime 为 false 时无意义
	HasRuntime  bool    // 榜单内至少有一条已知片长
	TotalVotes  int64
	Oldest      YearMark
	Newest      YearMark
	HasYears    bool // 榜单内至少有一条已知年份
}

// GenreLeaders 单个类型的两份子榜单
type GenreLeaders struct {
	Genre    string
	ByRating []Movie // 评分降序，评分并列先比票数，再保持原始顺序
	ByVotes  []Movie // 票数降序，票数并列先比评分，再保持原始顺序
}

// Insights 一次运行的全部聚合结果
type Insights struct {
	Summary     Summary
	GenreCounts map[string]int // 全量类型计数；多类型影片按标签各计一次
	TopGenres   []GenreCount   // 前K个类型，计数降序，并列按字母序
	Decades     []DecadeCount  // 年代升序；未知年份不参与
	Leaders     []GenreLeaders // 与 TopGenres 一一对应
}

// Aggregate 在榜单（TopNSet）上计算全部统计量。
// 输入已全部在内存中，不存在重试或部分失败；
// 空榜单产生明确的"无数据"结果而不是异常。
func Aggregate(top []Movie, topGenres, genreLeaders int) *Insights {
	ins := &Insights{
		Summary:     summarize(top),
		GenreCounts: countGenres(top),
	}

	ins.TopGenres = rankGenres(ins.GenreCounts, topGenres)
	ins.Decades = countDecades(top)

	for _, gc := range ins.TopGenres {
		ins.Leaders = append(ins.Leaders, GenreLeaders{
			Genre:    gc.Genre,
			ByRating: topByRating(top, gc.Genre, genreLeaders),
			ByVotes:  topByVotes(top, gc.Genre, genreLeaders),
		})
	}

	return ins
}

func summarize(top []Movie) Summary {
	s := Summary{Count: len(top)}
	if len(top) == 0 {
		return s
	}

	ratings := make([]float64, 0, len(top))
	var runtimes []float64
	for _, m := range top {
		ratings = append(ratings, m.Rating)
		s.TotalVotes += int64(m.Votes)
		// 片长缺失的行只被排除出片长均值这一项
		if m.HasRuntime {
			runtimes = append(runtimes, float64(m.Runtime))
		}

		if !m.HasYear {
			continue
		}
		if !s.HasYears {
			s.HasYears = true
			s.Oldest = YearMark{Year: m.Year, Title: m.Title}
			s.Newest = YearMark{Year: m.Year, Title: m.Title}
			continue
		}
		// 严格比较：并列年份保留先出现的影片
		if m.Year < s.Oldest.Year {
			s.Oldest = YearMark{Year: m.Year, Title: m.Title}
		}
		if m.Year > s.Newest.Year {
			s.Newest = YearMark{Year: m.Year, Title: m.Title}
		}
	}

	s.MeanRating = stat.Mean(ratings, nil)
	if len(runtimes) > 0 {
		s.HasRuntime = true
		s.MeanRuntime = stat.Mean(runtimes, nil)
	}
	return s
}

func countGenres(top []Movie) map[string]int {
	counts := make(map[string]int)
	for _, m := range top {
		for _, g := range m.Genres {
			counts[g]++
		}
	}
	return counts
}

// rankGenres 计数降序取前K，计数并列按字母序保证结果确定
func rankGenres(counts map[string]int, k int) []GenreCount {
	ranked := make([]GenreCount, 0, len(counts))
	for g, c := range counts {
		ranked = append(ranked, GenreCount{Genre: g, Count: c})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Genre < ranked[j].Genre
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// countDecades 按年代分桶，未知年份只被排除出该项统计
func countDecades(top []Movie) []DecadeCount {
	counts := make(map[int]int)
	for _, m := range top {
		if m.HasYear {
			counts[m.Decade()]++
		}
	}

	decades := make([]DecadeCount, 0, len(counts))
	for d, c := range counts {
		decades = append(decades, DecadeCount{Decade: d, Count: c})
	}
	sort.Slice(decades, func(i, j int) bool { return decades[i].Decade < decades[j].Decade })
	return decades
}

func filterGenre(top []Movie, genre string) []Movie {
	var out []Movie
	for _, m := range top {
		if m.InGenre(genre) {
			out = append(out, m)
		}
	}
	return out
}

func topByRating(top []Movie, genre string, m int) []Movie {
	leaders := filterGenre(top, genre)
	sort.SliceStable(leaders, func(i, j int) bool {
		if leaders[i].Rating != leaders[j].Rating {
			return leaders[i].Rating > leaders[j].Rating
		}
		return leaders[i].Votes > leaders[j].Votes
	})
	if m > 0 && len(leaders) > m {
		leaders = leaders[:m]
	}
	return leaders
}

func topByVotes(top []Movie, genre string, m int) []Movie {
	leaders := filterGenre(top, genre)
	sort.SliceStable(leaders, func(i, j int) bool {
		if leaders[i].Votes != leaders[j].Votes {
			return leaders[i].Votes > leaders[j].Votes
		}
		return leaders[i].Rating > leaders[j].Rating
	})
	if m > 0 && len(leaders) > m {
		leaders = leaders[:m]
	}
	return leaders
}
