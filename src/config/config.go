package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// 分析参数默认值（未配置时生效）
const (
	DefaultTopN         = 100
	DefaultTopGenres    = 3
	DefaultGenreLeaders = 3
)

// Config 结构体定义了应用程序的配置结构
type Config struct {
	Dataset struct {
		BasicsURL    string   `json:"basics_url"`    // 标题元数据下载地址
		RatingsURL   string   `json:"ratings_url"`   // 评分数据下载地址
		FetchTimeout Duration `json:"fetch_timeout"` // 单次下载超时时间
	} `json:"dataset"`

	Analysis struct {
		TopN         int `json:"top_n"`         // 榜单大小 N
		TopGenres    int `json:"top_genres"`    // 统计的热门类型数 K
		GenreLeaders int `json:"genre_leaders"` // 每个类型的榜单大小 M
	} `json:"analysis"`

	Output struct {
		CSVPath   string `json:"csv_path"`   // 榜单CSV输出路径
		XLSXPath  string `json:"xlsx_path"`  // 榜单XLSX输出路径
		ChartPath string `json:"chart_path"` // 四联图PNG输出路径
	} `json:"output"`

	DataDir         string   `json:"data_dir"`         // 原始数据快照存储目录
	RefreshInterval Duration `json:"refresh_interval"` // 定时刷新间隔
	LogName         string   `json:"log_name"`
	LogMaxSize      string   `json:"log_max_size"`
}

// DataConfig 数据集侧配置：列名映射、缺失值哨兵等
type DataConfig struct {
	Columns     map[string]string `json:"columns"`      // 逻辑字段名 -> 数据集列名
	NASentinel  string            `json:"na_sentinel"`  // 缺失值哨兵，IMDb数据集为 \N
	GenreSep    string            `json:"genre_sep"`    // 类型字段分隔符
	FeatureType string            `json:"feature_type"` // 保留的titleType取值
}

var (
	once               sync.Once
	instance           *Config
	dataConfigInstance *DataConfig
	mu                 sync.RWMutex
)

func LoadConfig(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	var err error
	once.Do(func() {
		instance, dataConfigInstance, err = loadConfigs(jsonFolder, jsonFile, dataJsonFile)
	})
	return instance, dataConfigInstance, err
}

func loadConfigs(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)
	dataConfigFile := filepath.Join(jsonFolder, dataJsonFile)

	configData, err := readFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	dataConfigData, err := readFile(dataConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取数据配置文件失败: %w", err)
	}

	cfgChan := make(chan *Config, 1)
	dcfgChan := make(chan *DataConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseDataConfig(dataConfigData, dcfgChan, errChan)

	cfg, dcfg, err := waitForResults(cfgChan, dcfgChan, errChan)
	if err != nil {
		return nil, nil, err
	}

	cfg.applyDefaults()
	return cfg, dcfg, nil
}

// applyDefaults 填充未配置的分析参数
func (c *Config) applyDefaults() {
	if c.Analysis.TopN <= 0 {
		c.Analysis.TopN = DefaultTopN
	}
	if c.Analysis.TopGenres <= 0 {
		c.Analysis.TopGenres = DefaultTopGenres
	}
	if c.Analysis.GenreLeaders <= 0 {
		c.Analysis.GenreLeaders = DefaultGenreLeaders
	}
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件 %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		errChan <- fmt.Errorf("解析Config失败: %w", err)
		return
	}
	resultChan <- &cfg
}

func parseDataConfig(data []byte, resultChan chan<- *DataConfig, errChan chan<- error) {
	var dcfg DataConfig
	if err := json.Unmarshal(data, &dcfg); err != nil {
		errChan <- fmt.Errorf("解析DataConfig失败: %w", err)
		return
	}
	resultChan <- &dcfg
}

func waitForResults(
	cfgChan <-chan *Config,
	dcfgChan <-chan *DataConfig,
	errChan <-chan error,
) (*Config, *DataConfig, error) {
	var (
		cfg    *Config
		dcfg   *DataConfig
		errors []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case d := <-dcfgChan:
			dcfg = d
		case err := <-errChan:
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, nil, combineErrors(errors)
	}

	if cfg == nil || dcfg == nil {
		return nil, nil, fmt.Errorf("部分配置未加载成功")
	}

	return cfg, dcfg, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	msg := "配置加载遇到多个错误:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// Duration 是time.Duration的自定义包装类型
// 用于支持JSON序列化和反序列化
type Duration time.Duration

// UnmarshalJSON 实现json.Unmarshaler接口
// 用于从JSON字符串解析Duration
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON 实现json.Marshaler接口
// 用于将Duration序列化为JSON字符串
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// GetColumn 取逻辑字段对应的数据集列名，未配置时回退为逻辑名本身
func (dc *DataConfig) GetColumn(field string) string {
	mu.RLock()
	defer mu.RUnlock()
	if col, ok := dc.Columns[field]; ok {
		return col
	}
	return field
}

// SetColumn 覆盖逻辑字段的列名映射
func (dc *DataConfig) SetColumn(field, column string) {
	mu.Lock()
	defer mu.Unlock()
	if dc.Columns == nil {
		dc.Columns = make(map[string]string)
	}
	dc.Columns[field] = column
}

// NA 缺失值哨兵，默认 \N
func (dc *DataConfig) NA() string {
	if dc.NASentinel == "" {
		return `\N`
	}
	return dc.NASentinel
}

// Separator 类型字段分隔符，默认逗号
func (dc *DataConfig) Separator() string {
	if dc.GenreSep == "" {
		return ","
	}
	return dc.GenreSep
}

// TitleType 需要保留的作品类型，默认 movie
func (dc *DataConfig) TitleType() string {
	if dc.FeatureType == "" {
		return "movie"
	}
	return dc.FeatureType
}
