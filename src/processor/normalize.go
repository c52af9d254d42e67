package processor

import (
	"MovieInsight/src/config"
	"MovieInsight/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// 规范化阶段使用的逻辑字段名，实际列名由 DataConfig 映射
var (
	titleFields  = []string{"id", "titleType", "title", "year", "runtime", "genres"}
	ratingFields = []string{"id", "rating", "votes"}
)

// checkSchema 校验DataFrame不为空且包含全部所需列
func checkSchema(df dataframe.DataFrame, source string, fields []string, dcfg *config.DataConfig) error {
	if df.Nrow() == 0 {
		return &SchemaError{Source: source}
	}

	var missing []string
	for _, f := range fields {
		if !utils.HasColumn(df, dcfg.GetColumn(f)) {
			missing = append(missing, dcfg.GetColumn(f))
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Source: source, Missing: missing}
	}
	return nil
}

// NormalizeTitles 将原始标题表规范化为类型化记录。
// 规则：
//   - 只保留 titleType 为配置值（movie）的行
//   - 年份、片长做显式整数解析，解析失败标记为缺失而不是丢行
//   - 类型字段按分隔符切分，缺失时为空集合
func NormalizeTitles(df dataframe.DataFrame, dcfg *config.DataConfig) ([]Title, error) {
	if err := checkSchema(df, "basics", titleFields, dcfg); err != nil {
		return nil, err
	}

	// 1. 过滤非电影条目（剔除短片、剧集等）
	movies := df.Filter(
		dataframe.F{Colname: dcfg.GetColumn("titleType"), Comparator: series.Eq, Comparando: dcfg.TitleType()},
	)
	if movies.Err != nil {
		return nil, movies.Err
	}

	na := dcfg.NA()
	idCol := movies.Col(dcfg.GetColumn("id"))
	nameCol := movies.Col(dcfg.GetColumn("title"))
	yearCol := movies.Col(dcfg.GetColumn("year"))
	runtimeCol := movies.Col(dcfg.GetColumn("runtime"))
	genresCol := movies.Col(dcfg.GetColumn("genres"))

	// 2. 逐行做显式字段解析
	titles := make([]Title, 0, movies.Nrow())
	for i := 0; i < movies.Nrow(); i++ {
		id := utils.CellString(idCol.Elem(i), na)
		if id == "" {
			// 无ID的行无法参与连接，直接跳过
			continue
		}

		t := Title{
			ID:   id,
			Name: utils.CellString(nameCol.Elem(i), na),
		}

		if year, ok := utils.ParseInt(utils.CellString(yearCol.Elem(i), na)); ok {
			t.Year = year
			t.HasYear = true
		}
		if runtime, ok := utils.ParseInt(utils.CellString(runtimeCol.Elem(i), na)); ok {
			t.Runtime = runtime
			t.HasRuntime = true
		}
		t.Genres = utils.SplitList(utils.CellString(genresCol.Elem(i), na), dcfg.Separator())

		titles = append(titles, t)
	}

	return titles, nil
}

// NormalizeRatings 将原始评分表规范化为类型化记录。
// 评分表两列均为必填，解析失败的行视为坏行跳过
func NormalizeRatings(df dataframe.DataFrame, dcfg *config.DataConfig) ([]Rating, error) {
	if err := checkSchema(df, "ratings", ratingFields, dcfg); err != nil {
		return nil, err
	}

	na := dcfg.NA()
	idCol := df.Col(dcfg.GetColumn("id"))
	ratingCol := df.Col(dcfg.GetColumn("rating"))
	votesCol := df.Col(dcfg.GetColumn("votes"))

	ratings := make([]Rating, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		id := utils.CellString(idCol.Elem(i), na)
		if id == "" {
			continue
		}

		rating, ok := utils.ParseFloat(utils.CellString(ratingCol.Elem(i), na))
		if !ok {
			continue
		}
		votes, ok := utils.ParseInt(utils.CellString(votesCol.Elem(i), na))
		if !ok || votes < 0 {
			continue
		}

		ratings = append(ratings, Rating{ID: id, Rating: rating, Votes: votes})
	}

	return ratings, nil
}
