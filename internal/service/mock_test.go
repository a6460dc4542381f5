package service

import (
	"Planting/internal/pkg/kafka"
	"context"
	"errors"
	"sync"
)

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []*kafka.ForumEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event *kafka.ForumEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]string, 0, len(p.events))
	for _, e := range p.events {
		result = append(result, e.Type)
	}
	return result
}

var errBrokerDown = errors.New("broker down")
