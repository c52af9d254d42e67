package processor

// Join 按ID内连接标题与评分记录。
// 规则：
//   - 只有两侧都出现的ID产生输出，未匹配的行静默丢弃
//   - 任一数据源出现重复ID即返回 DataIntegrityError
//   - 输出顺序与标题表行顺序一致，保证多次运行结果确定
func Join(titles []Title, ratings []Rating) ([]Movie, error) {
	byID := make(map[string]Rating, len(ratings))
	for _, r := range ratings {
		if _, dup := byID[r.ID]; dup {
			return nil, &DataIntegrityError{Source: "ratings", ID: r.ID}
		}
		byID[r.ID] = r
	}

	seen := make(map[string]bool, len(titles))
	movies := make([]Movie, 0, len(titles))
	for _, t := range titles {
		if seen[t.ID] {
			return nil, &DataIntegrityError{Source: "basics", ID: t.ID}
		}
		seen[t.ID] = true

		r, ok := byID[t.ID]
		if !ok {
			continue
		}

		movies = append(movies, Movie{
			ID:         t.ID,
			Title:      t.Name,
			Year:       t.Year,
			HasYear:    t.HasYear,
			Runtime:    t.Runtime,
			HasRuntime: t.HasRuntime,
			Genres:     t.Genres,
			Rating:     r.Rating,
			Votes:      r.Votes,
		})
	}

	return movies, nil
}
