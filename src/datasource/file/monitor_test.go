package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileMonitorWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "title.basics.tsv")
	if err := os.WriteFile(path, []byte("tconst\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewFileMonitor(dir)
	if err != nil {
		t.Fatalf("NewFileMonitor: %v", err)
	}
	defer m.Close()

	fired := make(chan string, 1)
	go m.Watch(func(name string) {
		select {
		case fired <- name:
		default:
		}
	})

	// 等待监听就绪后重写快照文件
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("tconst\ntt0001\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-fired:
		if name != path {
			t.Errorf("回调文件 = %s, 期望 %s", name, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("写事件未触发回调")
	}
}

func TestFileMonitorIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	m, err := NewFileMonitor(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	fired := make(chan string, 1)
	go m.Watch(func(name string) {
		select {
		case fired <- name:
		default:
		}
	})

	time.Sleep(100 * time.Millisecond)
	// 扩展名不可识别的文件不应触发
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-fired:
		t.Errorf("不应触发回调: %s", name)
	case <-time.After(500 * time.Millisecond):
	}
}
