// client.go
package imdb

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"MovieInsight/src/config"
	"MovieInsight/src/datasource/file"
)

// FetchError 表示远端数据集获取失败（网络错误或非2xx状态码）。
// 属于致命错误：中止运行，不进入任何处理阶段。
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "fetch error"
	}
	if e.Err != nil {
		return fmt.Sprintf("下载 %s 失败: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("下载 %s 失败: HTTP %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client 负责从IMDb公开数据集拉取两份gzip压缩的TSV
type Client struct {
	basicsURL   string
	ratingsURL  string
	snapshotDir string // 非空时在本地保留一份原始快照
	na          string
	httpClient  *http.Client
}

func NewClient(cfg *config.Config, dcfg *config.DataConfig) *Client {
	timeout := time.Duration(cfg.Dataset.FetchTimeout)
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	return &Client{
		basicsURL:   cfg.Dataset.BasicsURL,
		ratingsURL:  cfg.Dataset.RatingsURL,
		snapshotDir: cfg.DataDir,
		na:          dcfg.NA(),
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Titles 拉取标题元数据表
func (c *Client) Titles() (dataframe.DataFrame, error) {
	return c.fetch(c.basicsURL)
}

// Ratings 拉取评分数据表
func (c *Client) Ratings() (dataframe.DataFrame, error) {
	return c.fetch(c.ratingsURL)
}

func (c *Client) fetch(rawURL string) (dataframe.DataFrame, error) {
	resp, err := c.httpClient.Get(rawURL)
	if err != nil {
		return dataframe.New(), &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dataframe.New(), &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body

	// 下载的同时在数据目录保留一份原始快照，供离线重跑
	if c.snapshotDir != "" {
		if snap, err := createSnapshot(c.snapshotDir, rawURL); err == nil {
			defer snap.Close()
			body = io.TeeReader(body, snap)
		}
	}

	if strings.HasSuffix(rawURL, ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return dataframe.New(), fmt.Errorf("解压 %s 失败: %w", rawURL, err)
		}
		defer gz.Close()
		body = gz
	}

	return file.ReadTSV(body, c.na)
}

// createSnapshot 按URL路径的文件名在数据目录创建快照文件
func createSnapshot(dir, rawURL string) (*os.File, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return nil, fmt.Errorf("无法从 %s 推断快照文件名", rawURL)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(dir, name))
}
