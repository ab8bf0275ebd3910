package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineParamsLoadReturnsStoredSnapshot(t *testing.T) {
	p := NewPipelineParams(PipelineConfig{TrendSlopeThreshold: 0.02, ObservationWindow: 20})
	assert.Equal(t, 0.02, p.Load().TrendSlopeThreshold)

	p.Store(PipelineConfig{TrendSlopeThreshold: 0.05, ObservationWindow: 10})
	got := p.Load()
	assert.Equal(t, 0.05, got.TrendSlopeThreshold)
	assert.Equal(t, 10, got.ObservationWindow)
}

// 热加载协程替换参数的同时服务在读，每次读必须拿到
// 新旧两份配置之一的完整快照，不能读到混合值
func TestPipelineParamsConcurrentReload(t *testing.T) {
	old := PipelineConfig{
		TrendSlopeThreshold:       0.02,
		StrictTrendSlopeThreshold: 0.05,
		ObservationWindow:         20,
	}
	updated := PipelineConfig{
		TrendSlopeThreshold:       0.04,
		StrictTrendSlopeThreshold: 0.1,
		ObservationWindow:         50,
	}

	p := NewPipelineParams(old)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if i%2 == 0 {
				p.Store(updated)
			} else {
				p.Store(old)
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				got := p.Load()
				if !assert.True(t, got == old || got == updated) {
					return
				}
			}
		}()
	}

	wg.Wait()
}
