package report

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"MovieInsight/src/processor"
)

// PrintSummary 输出标量统计块。
// 字段顺序固定：总数、平均评分、平均片长、总票数、最早/最新影片、热门类型。
// 空榜单时各均值输出 unavailable，不中断
func PrintSummary(w io.Writer, ins *processor.Insights) {
	p := message.NewPrinter(language.English)
	s := ins.Summary

	fmt.Fprintln(w, "\n===== Data Insights =====")
	p.Fprintf(w, "Total movies analyzed: %d\n", s.Count)

	if s.Count > 0 {
		fmt.Fprintf(w, "Average rating: %.1f\n", s.MeanRating)
	} else {
		fmt.Fprintln(w, "Average rating: unavailable")
	}

	if s.HasRuntime {
		fmt.Fprintf(w, "Average runtime: %.1f minutes\n", s.MeanRuntime)
	} else {
		fmt.Fprintln(w, "Average runtime: unavailable")
	}

	p.Fprintf(w, "Total votes: %d\n", s.TotalVotes)

	if s.HasYears {
		fmt.Fprintf(w, "Oldest movie: %d (%s)\n", s.Oldest.Year, s.Oldest.Title)
		fmt.Fprintf(w, "Newest movie: %d (%s)\n", s.Newest.Year, s.Newest.Title)
	} else {
		fmt.Fprintln(w, "Oldest movie: unavailable")
		fmt.Fprintln(w, "Newest movie: unavailable")
	}

	if len(ins.TopGenres) == 0 {
		fmt.Fprintln(w, "\nTop Genres: none")
		return
	}
	fmt.Fprintf(w, "\nTop %d Genres:\n", len(ins.TopGenres))
	for _, gc := range ins.TopGenres {
		fmt.Fprintf(w, "- %s: %d movies\n", gc.Genre, gc.Count)
	}
}

// PrintGenreLeaders 输出每个热门类型的两份子榜单
func PrintGenreLeaders(w io.Writer, ins *processor.Insights) {
	if len(ins.Leaders) == 0 {
		return
	}

	p := message.NewPrinter(language.English)
	fmt.Fprintln(w, "\n===== Top Movies by Genre =====")

	for _, gl := range ins.Leaders {
		fmt.Fprintf(w, "\nTop %d '%s' Movies by Rating:\n", len(gl.ByRating), gl.Genre)
		for _, m := range gl.ByRating {
			fmt.Fprintf(w, "- %s (%.1f, %s)\n", m.Title, m.Rating, yearLabel(m))
		}

		fmt.Fprintf(w, "\nTop %d '%s' Movies by Popularity (Votes):\n", len(gl.ByVotes), gl.Genre)
		for _, m := range gl.ByVotes {
			p.Fprintf(w, "- %s (%d votes, %s)\n", m.Title, m.Votes, yearLabel(m))
		}
	}
}

func yearLabel(m processor.Movie) string {
	if m.HasYear {
		return strconv.Itoa(m.Year)
	}
	return "unknown"
}
