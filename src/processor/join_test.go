package processor

import (
	"errors"
	"testing"
)

func TestJoinInner(t *testing.T) {
	titles := []Title{
		{ID: "tt1", Name: "A", Year: 1994, HasYear: true},
		{ID: "tt2", Name: "B", Year: 1972, HasYear: true},
		{ID: "tt3", Name: "C", Year: 2010, HasYear: true}, // 无评分, 应被丢弃
	}
	ratings := []Rating{
		{ID: "tt2", Rating: 9.2, Votes: 200},
		{ID: "tt1", Rating: 9.3, Votes: 100},
		{ID: "tt9", Rating: 5.0, Votes: 10}, // 无标题, 应被丢弃
	}

	movies, err := Join(titles, ratings)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}

	if len(movies) != 2 {
		t.Fatalf("期望2条连接结果, 实际 %d", len(movies))
	}
	// 输出顺序与标题表一致
	if movies[0].ID != "tt1" || movies[1].ID != "tt2" {
		t.Errorf("连接顺序错误: %s, %s", movies[0].ID, movies[1].ID)
	}
	if movies[0].Rating != 9.3 || movies[0].Votes != 100 {
		t.Errorf("评分字段未正确合并: %+v", movies[0])
	}
	if movies[1].Title != "B" || movies[1].Year != 1972 {
		t.Errorf("标题字段未正确合并: %+v", movies[1])
	}
}

func TestJoinDuplicateRatingID(t *testing.T) {
	titles := []Title{{ID: "tt1", Name: "A"}}
	ratings := []Rating{
		{ID: "tt1", Rating: 9.0, Votes: 1},
		{ID: "tt1", Rating: 8.0, Votes: 2},
	}

	_, err := Join(titles, ratings)
	var integrityErr *DataIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("期望DataIntegrityError, 实际 %v", err)
	}
	if integrityErr.Source != "ratings" || integrityErr.ID != "tt1" {
		t.Errorf("错误信息不完整: %+v", integrityErr)
	}
}

func TestJoinDuplicateTitleID(t *testing.T) {
	titles := []Title{
		{ID: "tt1", Name: "A"},
		{ID: "tt1", Name: "A again"},
	}
	ratings := []Rating{{ID: "tt1", Rating: 9.0, Votes: 1}}

	_, err := Join(titles, ratings)
	var integrityErr *DataIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("期望DataIntegrityError, 实际 %v", err)
	}
	if integrityErr.Source != "basics" {
		t.Errorf("应报告basics来源: %+v", integrityErr)
	}
}

func TestJoinEmpty(t *testing.T) {
	movies, err := Join(nil, nil)
	if err != nil {
		t.Fatalf("空输入不应报错: %v", err)
	}
	if len(movies) != 0 {
		t.Errorf("空输入应得到空结果: %d", len(movies))
	}
}
