package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"

	infraClock "github.com/weisyn/adkit/pkg/interfaces/infrastructure/clock"
	"github.com/weisyn/adkit/pkg/interfaces/infrastructure/log"
)

// creative 预缓存的广告内容
type creative struct {
	Network    string `json:"network"`
	Fullscreen bool   `json:"fullscreen"`
	RequestID  string `json:"request_id"`
	ExpiresAt  int64  `json:"expires_at"` // UnixNano，按注入的时钟判定过期
}

// creativeStore 基于 BigCache 的预缓存创意存储，每个广告位最多一条
//
// 过期按注入的时钟判定，不依赖 BigCache 自身的淘汰窗口，
// 以便模拟时钟驱动的测试与场景。
type creativeStore struct {
	cache  *bigcache.BigCache
	clock  infraClock.Clock
	logger log.Logger

	mu     sync.Mutex
	closed bool
}

func newCreativeStore(clk infraClock.Clock, logger log.Logger, maxEntries int) (*creativeStore, error) {
	cfg := bigcache.DefaultConfig(24 * time.Hour)
	cfg.Shards = 16
	cfg.MaxEntriesInWindow = maxEntries
	cfg.MaxEntrySize = 256
	cfg.CleanWindow = 0
	cfg.Verbose = false

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("创建创意存储失败: %w", err)
	}
	return &creativeStore{cache: cache, clock: clk, logger: logger}, nil
}

// put 保存广告位的预缓存创意，覆盖旧的
func (s *creativeStore) put(placement string, c creative) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errStoreClosed
	}
	return s.cache.Set(placement, data)
}

// get 读取未过期的创意；过期的条目会被删除
func (s *creativeStore) get(placement string) (creative, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return creative{}, false
	}

	data, err := s.cache.Get(placement)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			s.logger.Warnf("读取创意[%s]失败: %v", placement, err)
		}
		return creative{}, false
	}

	var c creative
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Warnf("解析创意[%s]失败: %v", placement, err)
		_ = s.cache.Delete(placement)
		return creative{}, false
	}
	if s.clock.Now().UnixNano() >= c.ExpiresAt {
		_ = s.cache.Delete(placement)
		return creative{}, false
	}
	return c, true
}

// take 取出并删除未过期的创意
func (s *creativeStore) take(placement string) (creative, bool) {
	c, ok := s.get(placement)
	if ok {
		s.remove(placement)
	}
	return c, ok
}

func (s *creativeStore) remove(placement string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err := s.cache.Delete(placement); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		s.logger.Warnf("删除创意[%s]失败: %v", placement, err)
	}
}

// len 存储中的条目数（含已过期但尚未读取的条目）
func (s *creativeStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	return s.cache.Len()
}

func (s *creativeStore) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.cache.Close()
}

var errStoreClosed = errors.New("创意存储已关闭")
