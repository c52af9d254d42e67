package processor

import "sort"

// RankByVotes 按票数降序取前N条。
// 稳定排序：票数相同的行维持连接输出的相对顺序，
// 保证同一输入多次运行得到字节一致的榜单。
// 可用记录不足N条时全部返回，不算错误。
func RankByVotes(movies []Movie, n int) []Movie {
	ranked := make([]Movie, len(movies))
	copy(ranked, movies)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
