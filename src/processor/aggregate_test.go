package processor

import (
	"math"
	"reflect"
	"testing"
)

// 三部电影的固定场景: Drama两部, Action一部
func sampleTop() []Movie {
	return []Movie{
		{ID: "tt1", Title: "The Shawshank Redemption", Year: 1994, HasYear: true,
			Runtime: 142, HasRuntime: true, Genres: []string{"Drama"}, Rating: 9.3, Votes: 2836049},
		{ID: "tt2", Title: "The Godfather", Year: 1972, HasYear: true,
			Runtime: 175, HasRuntime: true, Genres: []string{"Drama"}, Rating: 9.2, Votes: 1934527},
		{ID: "tt3", Title: "Inception", Year: 2010, HasYear: true,
			Runtime: 148, HasRuntime: true, Genres: []string{"Action"}, Rating: 8.5, Votes: 500000},
	}
}

func TestAggregateScenario(t *testing.T) {
	ins := Aggregate(sampleTop(), 3, 3)
	s := ins.Summary

	if s.Count != 3 {
		t.Errorf("Count = %d", s.Count)
	}
	if s.TotalVotes != 2836049+1934527+500000 {
		t.Errorf("TotalVotes = %d", s.TotalVotes)
	}
	if s.Oldest.Year != 1972 || s.Oldest.Title != "The Godfather" {
		t.Errorf("Oldest = %+v", s.Oldest)
	}
	if s.Newest.Year != 2010 || s.Newest.Title != "Inception" {
		t.Errorf("Newest = %+v", s.Newest)
	}

	// 类型计数: Drama 2, Action 1
	if len(ins.TopGenres) != 2 {
		t.Fatalf("TopGenres数量 = %d", len(ins.TopGenres))
	}
	if ins.TopGenres[0].Genre != "Drama" || ins.TopGenres[0].Count != 2 {
		t.Errorf("TopGenres[0] = %+v", ins.TopGenres[0])
	}
	if ins.TopGenres[1].Genre != "Action" || ins.TopGenres[1].Count != 1 {
		t.Errorf("TopGenres[1] = %+v", ins.TopGenres[1])
	}

	// Drama子榜单: 按评分和按票数都应是 tt1, tt2
	drama := ins.Leaders[0]
	if drama.Genre != "Drama" {
		t.Fatalf("Leaders[0].Genre = %s", drama.Genre)
	}
	if len(drama.ByRating) != 2 || drama.ByRating[0].ID != "tt1" || drama.ByRating[1].ID != "tt2" {
		t.Errorf("Drama ByRating顺序错误: %+v", drama.ByRating)
	}
	if len(drama.ByVotes) != 2 || drama.ByVotes[0].Votes != 2836049 || drama.ByVotes[1].Votes != 1934527 {
		t.Errorf("Drama ByVotes顺序错误: %+v", drama.ByVotes)
	}
}

func TestAggregateMeanRuntimeExcludesMissing(t *testing.T) {
	top := []Movie{
		{ID: "tt1", Runtime: 120, HasRuntime: true, Rating: 8.0},
		{ID: "tt2", HasRuntime: false, Rating: 8.0},
		{ID: "tt3", Runtime: 130, HasRuntime: true, Rating: 8.0},
	}

	ins := Aggregate(top, 3, 3)
	if !ins.Summary.HasRuntime {
		t.Fatal("存在已知片长时HasRuntime应为true")
	}
	if math.Abs(ins.Summary.MeanRuntime-125) > 1e-9 {
		t.Errorf("MeanRuntime = %v, 期望 125", ins.Summary.MeanRuntime)
	}
}

func TestAggregateAllRuntimesMissing(t *testing.T) {
	top := []Movie{
		{ID: "tt1", Rating: 8.0},
		{ID: "tt2", Rating: 9.0},
	}

	ins := Aggregate(top, 3, 3)
	if ins.Summary.HasRuntime {
		t.Error("全部片长缺失时应报告不可用而不是除零")
	}
	if math.Abs(ins.Summary.MeanRating-8.5) > 1e-9 {
		t.Errorf("MeanRating = %v", ins.Summary.MeanRating)
	}
}

func TestAggregateGenreCountsSumToTagOccurrences(t *testing.T) {
	top := []Movie{
		{ID: "tt1", Genres: []string{"Drama", "Crime"}, Rating: 9.0},
		{ID: "tt2", Genres: []string{"Drama"}, Rating: 8.0},
		{ID: "tt3", Genres: []string{"Action", "Sci-Fi", "Thriller"}, Rating: 8.5},
	}

	ins := Aggregate(top, 10, 3)

	total := 0
	for _, c := range ins.GenreCounts {
		total += c
	}
	// 多类型影片按标签各计一次: 2+1+3 = 6
	if total != 6 {
		t.Errorf("类型标签总数 = %d, 期望 6", total)
	}
}

func TestAggregateGenreTiesAlphabetical(t *testing.T) {
	top := []Movie{
		{ID: "tt1", Genres: []string{"Western", "Comedy"}, Rating: 8.0},
		{ID: "tt2", Genres: []string{"Animation"}, Rating: 8.0},
	}

	ins := Aggregate(top, 3, 3)
	// 三个类型各1次, 并列按字母序
	want := []string{"Animation", "Comedy", "Western"}
	for i, g := range want {
		if ins.TopGenres[i].Genre != g {
			t.Errorf("TopGenres[%d] = %s, 期望 %s", i, ins.TopGenres[i].Genre, g)
		}
	}
}

func TestAggregateDecades(t *testing.T) {
	top := []Movie{
		{ID: "tt1", Year: 1994, HasYear: true, Rating: 9.0},
		{ID: "tt2", Year: 1999, HasYear: true, Rating: 8.0},
		{ID: "tt3", Year: 2010, HasYear: true, Rating: 8.5},
		{ID: "tt4", HasYear: false, Rating: 7.0}, // 未知年份不参与年代统计
	}

	ins := Aggregate(top, 3, 3)
	want := []DecadeCount{{Decade: 1990, Count: 2}, {Decade: 2010, Count: 1}}
	if !reflect.DeepEqual(ins.Decades, want) {
		t.Errorf("Decades = %+v, 期望 %+v", ins.Decades, want)
	}

	// 未知年份同样不参与年份极值
	if ins.Summary.Oldest.Year != 1994 || ins.Summary.Newest.Year != 2010 {
		t.Errorf("年份极值错误: %+v / %+v", ins.Summary.Oldest, ins.Summary.Newest)
	}
}

func TestAggregateYearTiesFirstOccurrence(t *testing.T) {
	top := []Movie{
		{ID: "tt1", Title: "First", Year: 1950, HasYear: true, Rating: 8.0},
		{ID: "tt2", Title: "Second", Year: 1950, HasYear: true, Rating: 8.0},
	}

	ins := Aggregate(top, 3, 3)
	if ins.Summary.Oldest.Title != "First" || ins.Summary.Newest.Title != "First" {
		t.Errorf("并列年份应取先出现的影片: %+v / %+v", ins.Summary.Oldest, ins.Summary.Newest)
	}
}

func TestAggregateLeaderTieBreaks(t *testing.T) {
	// 评分并列时按票数, 票数也并列时保持原顺序
	top := []Movie{
		{ID: "tt1", Title: "A", Genres: []string{"Drama"}, Rating: 9.0, Votes: 100},
		{ID: "tt2", Title: "B", Genres: []string{"Drama"}, Rating: 9.0, Votes: 300},
		{ID: "tt3", Title: "C", Genres: []string{"Drama"}, Rating: 9.0, Votes: 300},
	}

	ins := Aggregate(top, 1, 3)
	byRating := ins.Leaders[0].ByRating
	want := []string{"tt2", "tt3", "tt1"}
	for i, id := range want {
		if byRating[i].ID != id {
			t.Errorf("ByRating[%d] = %s, 期望 %s", i, byRating[i].ID, id)
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	ins := Aggregate(nil, 3, 3)
	s := ins.Summary

	if s.Count != 0 || s.TotalVotes != 0 {
		t.Errorf("空榜单计数应为零: %+v", s)
	}
	if s.HasRuntime || s.HasYears {
		t.Error("空榜单各均值应不可用")
	}
	if len(ins.TopGenres) != 0 || len(ins.Decades) != 0 || len(ins.Leaders) != 0 {
		t.Error("空榜单不应产生分组统计")
	}
}

func TestAggregateIdempotent(t *testing.T) {
	first := Aggregate(sampleTop(), 3, 3)
	second := Aggregate(sampleTop(), 3, 3)

	if !reflect.DeepEqual(first, second) {
		t.Error("同一榜单两次聚合结果应完全一致")
	}
}
