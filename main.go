package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron"

	"MovieInsight/src/config"
	"MovieInsight/src/datasource/file"
	"MovieInsight/src/datasource/imdb"
	"MovieInsight/src/storage"
)

func main() {
	var (
		configDir = flag.String("config", "./config", "配置文件目录")
		localDir  = flag.String("local", "", "离线模式: 从该目录读取数据快照")
		watch     = flag.Bool("watch", false, "配合 -local: 监视快照目录并自动重跑")
		refresh   = flag.Bool("refresh", false, "按配置的刷新间隔定时重跑")
		topN      = flag.Int("top", 0, "榜单大小N, 覆盖配置")
		topGenres = flag.Int("genres", 0, "热门类型数K, 覆盖配置")
		leaders   = flag.Int("leaders", 0, "每类型榜单大小M, 覆盖配置")
	)
	flag.Parse()

	cfg, dcfg, err := config.LoadConfig(*configDir, "config.json", "dataconfig.json")
	if err != nil {
		log.Fatal("加载配置失败:", err)
	}
	if *topN > 0 {
		cfg.Analysis.TopN = *topN
	}
	if *topGenres > 0 {
		cfg.Analysis.TopGenres = *topGenres
	}
	if *leaders > 0 {
		cfg.Analysis.GenreLeaders = *leaders
	}

	// 初始化日志系统
	logName := cfg.LogName
	if logName == "" {
		logName = "app.log"
	}
	logger, err := storage.NewLogger(logName)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()

	var src source
	if *localDir != "" {
		src = &file.Snapshot{Dir: *localDir, Dcfg: dcfg}
	} else {
		src = imdb.NewClient(cfg, dcfg)
	}

	pipe := &Pipeline{
		cfg:    cfg,
		dcfg:   dcfg,
		logger: logger,
		src:    src,
		out:    os.Stdout,
	}

	fmt.Println("IMDb Top Movies Analysis")
	fmt.Println("========================")

	runOnce := func() error {
		t1 := time.Now()
		if err := pipe.Run(); err != nil {
			logger.Error("分析运行失败: " + err.Error())
			return err
		}
		logger.Info(fmt.Sprintf("数据处理时间: %v", time.Since(t1)))
		if cfg.LogMaxSize != "" {
			if err := logger.CheckRotate(cfg.LogMaxSize); err != nil {
				logger.Warning("日志轮转失败: " + err.Error())
			}
		}
		return nil
	}

	switch {
	case *watch:
		if *localDir == "" {
			log.Fatal("-watch 需要配合 -local 使用")
		}
		if err := runOnce(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		monitor, err := file.NewFileMonitor(*localDir)
		if err != nil {
			logger.Error("创建文件监控失败: " + err.Error())
			os.Exit(1)
		}
		defer monitor.Close()

		logger.Info("快照监控已启动: " + *localDir)
		err = monitor.Watch(func(path string) {
			logger.Info("检测到快照更新: " + path)
			if err := runOnce(); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
			}
		})
		if err != nil {
			logger.Error("文件监控错误: " + err.Error())
			os.Exit(1)
		}

	case *refresh:
		interval := time.Duration(cfg.RefreshInterval)
		if interval <= 0 {
			interval = 24 * time.Hour
		}

		if err := runOnce(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		// 设置定时任务
		c := cron.New()
		cronSpec := fmt.Sprintf("@every %s", interval)
		if err := c.AddFunc(cronSpec, func() {
			logger.Info(fmt.Sprintf("开始定时刷新(间隔: %v)", interval))
			if err := runOnce(); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
			}
		}); err != nil {
			logger.Error("创建定时任务失败: " + err.Error())
			os.Exit(1)
		}

		c.Start()
		defer c.Stop()

		logger.Info(fmt.Sprintf("定时刷新已启动(间隔: %v), 按Ctrl+C退出", interval))
		waitForShutdown(logger)

	default:
		if err := runOnce(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			logger.Close()
			os.Exit(1)
		}
		fmt.Println("\nAnalysis complete! Check the generated files.")
	}
}

func waitForShutdown(logger *storage.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("Received signal: " + sig.String() + ", shutting down...")
}
