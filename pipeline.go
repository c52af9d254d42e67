package main

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"

	"MovieInsight/src/config"
	"MovieInsight/src/processor"
	"MovieInsight/src/report"
	"MovieInsight/src/storage"
)

// source 抽象两张原始表的来源：远端数据集或本地快照
type source interface {
	Titles() (dataframe.DataFrame, error)
	Ratings() (dataframe.DataFrame, error)
}

// Pipeline 一次完整分析的编排：取数 -> 规范化 -> 连接 -> 排序截断 -> 聚合 -> 输出
type Pipeline struct {
	cfg    *config.Config
	dcfg   *config.DataConfig
	logger *storage.Logger
	src    source
	out    io.Writer
}

// Run 执行一次分析。
// 所有计算在第一个输出文件打开之前完成，
// 任何致命错误都在写输出前返回，不留下部分结果。
func (p *Pipeline) Run() error {
	p.logger.Info("开始获取数据集")
	titlesDF, err := p.src.Titles()
	if err != nil {
		return err
	}
	ratingsDF, err := p.src.Ratings()
	if err != nil {
		return err
	}
	p.logger.Info(fmt.Sprintf("原始数据: 标题 %d 行, 评分 %d 行", titlesDF.Nrow(), ratingsDF.Nrow()))

	titles, err := processor.NormalizeTitles(titlesDF, p.dcfg)
	if err != nil {
		return fmt.Errorf("规范化标题数据失败: %w", err)
	}
	ratings, err := processor.NormalizeRatings(ratingsDF, p.dcfg)
	if err != nil {
		return fmt.Errorf("规范化评分数据失败: %w", err)
	}

	movies, err := processor.Join(titles, ratings)
	if err != nil {
		return fmt.Errorf("连接数据集失败: %w", err)
	}

	top := processor.RankByVotes(movies, p.cfg.Analysis.TopN)
	ins := processor.Aggregate(top, p.cfg.Analysis.TopGenres, p.cfg.Analysis.GenreLeaders)
	p.logger.Info(fmt.Sprintf("连接后 %d 部电影, 榜单取前 %d 部", len(movies), len(top)))

	// 计算全部完成，开始写输出
	if p.cfg.Output.CSVPath != "" {
		if err := report.WriteCSV(p.cfg.Output.CSVPath, top); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "\nSaved top %d movies to '%s'\n", len(top), p.cfg.Output.CSVPath)
	}
	if p.cfg.Output.XLSXPath != "" {
		if err := report.SaveToExcel(p.cfg.Output.XLSXPath, top); err != nil {
			return err
		}
	}

	report.PrintSummary(p.out, ins)

	if p.cfg.Output.ChartPath != "" {
		if err := report.RenderCharts(p.cfg.Output.ChartPath, top, ins); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "\nSaved visualizations to '%s'\n", p.cfg.Output.ChartPath)
	}

	report.PrintGenreLeaders(p.out, ins)
	return nil
}
