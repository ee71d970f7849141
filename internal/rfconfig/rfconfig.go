// Package rfconfig implements the server's YAML configuration, including
// hot-reload via fsnotify for the handful of knobs that are safe to
// change live: compute_threads and max_cache_size.
package rfconfig

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the server's YAML configuration.
type Config struct {
	Bind           string `yaml:"bind"`
	Port           int    `yaml:"port"`
	AdminAddr      string `yaml:"admin_addr"`
	ComputeThreads int    `yaml:"compute_threads"`
	AsyncThreads   int    `yaml:"async_threads"`
	MaxCacheSize   int64  `yaml:"max_cache_size"`
	LogLevel       string `yaml:"log_level"`
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Live holds the subset of Config that may change while the server is
// running: ComputeThreads and MaxCacheSize, both read atomically so
// request-handling goroutines never need to lock to observe them.
type Live struct {
	computeThreads int64
	maxCacheSize   int64
}

// NewLive snapshots the live-reloadable fields of cfg.
func NewLive(cfg Config) *Live {
	l := &Live{}
	atomic.StoreInt64(&l.computeThreads, int64(cfg.ComputeThreads))
	atomic.StoreInt64(&l.maxCacheSize, cfg.MaxCacheSize)
	return l
}

// ComputeThreads returns the current compute-thread limit.
func (l *Live) ComputeThreads() int {
	return int(atomic.LoadInt64(&l.computeThreads))
}

// MaxCacheSize returns the current cache byte budget.
func (l *Live) MaxCacheSize() int64 {
	return atomic.LoadInt64(&l.maxCacheSize)
}

// Watch starts an fsnotify watcher on path and applies any compute_threads
// / max_cache_size changes to live as the file is rewritten. It runs
// until stop is closed.
func Watch(path string, live *Live, logger *logrus.Logger, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	var once sync.Once
	closeWatcher := func() { once.Do(func() { watcher.Close() }) }

	if err := watcher.Add(path); err != nil {
		closeWatcher()
		return err
	}

	go func() {
		defer closeWatcher()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logger.WithError(err).Warn("reloading server config")
					continue
				}
				atomic.StoreInt64(&live.computeThreads, int64(cfg.ComputeThreads))
				atomic.StoreInt64(&live.maxCacheSize, cfg.MaxCacheSize)
				logger.WithFields(logrus.Fields{
					"compute_threads": cfg.ComputeThreads,
					"max_cache_size":  cfg.MaxCacheSize,
				}).Info("server config reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithError(err).Warn("watching server config")
			case <-stop:
				return
			}
		}
	}()

	return nil
}
