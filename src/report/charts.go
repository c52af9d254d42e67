package report

import (
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"MovieInsight/src/processor"
)

// RenderCharts 渲染2x2四联图并保存为PNG：
// 评分-票数散点（票数对数轴）、年代柱状图、
// 热门类型评分箱线图、片长直方图
func RenderCharts(filePath string, top []processor.Movie, ins *processor.Insights) error {
	plots := make([][]*plot.Plot, 2)
	for i := range plots {
		plots[i] = make([]*plot.Plot, 2)
	}

	var err error
	if plots[0][0], err = scatterPlot(top); err != nil {
		return fmt.Errorf("绘制散点图失败: %w", err)
	}
	if plots[0][1], err = decadePlot(ins); err != nil {
		return fmt.Errorf("绘制年代分布图失败: %w", err)
	}
	if plots[1][0], err = genreRatingPlot(top, ins); err != nil {
		return fmt.Errorf("绘制类型评分图失败: %w", err)
	}
	if plots[1][1], err = runtimePlot(top); err != nil {
		return fmt.Errorf("绘制片长分布图失败: %w", err)
	}

	img := vgimg.New(16*vg.Inch, 12*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: 5 * vg.Millimeter, PadY: 5 * vg.Millimeter,
		PadTop: 3 * vg.Millimeter, PadBottom: 3 * vg.Millimeter,
		PadLeft: 3 * vg.Millimeter, PadRight: 3 * vg.Millimeter,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("创建图片文件失败: %w", err)
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("写入PNG失败: %w", err)
	}
	return f.Close()
}

// scatterPlot 评分 vs 票数散点图，票数取对数轴
// 票数为0的行无法上对数轴，跳过
func scatterPlot(top []processor.Movie) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Rating vs. Votes"
	p.X.Label.Text = "IMDb Rating"
	p.Y.Label.Text = "Votes (log scale)"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, 0, len(top))
	for _, m := range top {
		if m.Votes > 0 {
			xys = append(xys, plotter.XY{X: m.Rating, Y: float64(m.Votes)})
		}
	}
	if len(xys) == 0 {
		return p, nil
	}

	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	p.Add(s)
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	return p, nil
}

// decadePlot 每个年代的榜单影片数柱状图
func decadePlot(ins *processor.Insights) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Movies by Decade"
	p.X.Label.Text = "Decade"
	p.Y.Label.Text = "Number of Movies"

	if len(ins.Decades) == 0 {
		return p, nil
	}

	vals := make(plotter.Values, len(ins.Decades))
	labels := make([]string, len(ins.Decades))
	for i, dc := range ins.Decades {
		vals[i] = float64(dc.Count)
		labels[i] = strconv.Itoa(dc.Decade)
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// genreRatingPlot 每个热门类型一个评分分布箱线图
func genreRatingPlot(top []processor.Movie, ins *processor.Insights) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Rating Distribution by Top Genres"
	p.X.Label.Text = "Genre"
	p.Y.Label.Text = "Rating"

	labels := make([]string, 0, len(ins.TopGenres))
	for i, gc := range ins.TopGenres {
		vals := plotter.Values{}
		for _, m := range top {
			if m.InGenre(gc.Genre) {
				vals = append(vals, m.Rating)
			}
		}

		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), vals)
		if err != nil {
			return nil, err
		}
		p.Add(box)
		labels = append(labels, gc.Genre)
	}

	if len(labels) > 0 {
		p.NominalX(labels...)
	}
	return p, nil
}

// runtimePlot 片长直方图，片长缺失的行不参与
func runtimePlot(top []processor.Movie) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Runtime Distribution"
	p.X.Label.Text = "Minutes"
	p.Y.Label.Text = "Number of Movies"

	vals := plotter.Values{}
	for _, m := range top {
		if m.HasRuntime {
			vals = append(vals, float64(m.Runtime))
		}
	}
	if len(vals) == 0 {
		return p, nil
	}

	h, err := plotter.NewHist(vals, 15)
	if err != nil {
		return nil, err
	}
	p.Add(h)
	return p, nil
}
