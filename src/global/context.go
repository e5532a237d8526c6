package global

import (
	"context"
	"sync"
	"time"

	"github.com/StickynoteStupid/utau/src/instances"
)

type Context interface {
	Deadline() (deadline time.Time, ok bool)
	Done() <-chan struct{}
	Err() error
	Value(key interface{}) interface{}
	Config() *ServerCfg

	GetRedisInstance() instances.RedisInstance
	SetRedisInstance(inst instances.RedisInstance)
	GetMongoInstance() instances.MongoInstance
	SetMongoInstance(inst instances.MongoInstance)
	GetPhonemizerInstance() instances.PhonemizerInstance
	SetPhonemizerInstance(inst instances.PhonemizerInstance)

	GetVoicebank(name string) (instances.Voicebank, bool)
	SetVoicebanks(banks map[string]instances.Voicebank)
	VoicebankNames() []string
}

type gCtx struct {
	ctx context.Context
	cfg *ServerCfg

	mtx        sync.Mutex
	redis      instances.RedisInstance
	mongo      instances.MongoInstance
	phonemizer instances.PhonemizerInstance
	voicebanks map[string]instances.Voicebank
}

func (c *gCtx) Deadline() (time.Time, bool) {
	return c.ctx.Deadline()
}

func (c *gCtx) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *gCtx) Err() error {
	return c.ctx.Err()
}

func (c *gCtx) Value(key interface{}) interface{} {
	return c.ctx.Value(key)
}

func (c *gCtx) Config() *ServerCfg {
	return c.cfg
}

func (c *gCtx) GetRedisInstance() instances.RedisInstance {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.redis
}

func (c *gCtx) SetRedisInstance(inst instances.RedisInstance) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.redis = inst
}

func (c *gCtx) GetMongoInstance() instances.MongoInstance {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.mongo
}

func (c *gCtx) SetMongoInstance(inst instances.MongoInstance) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.mongo = inst
}

func (c *gCtx) GetPhonemizerInstance() instances.PhonemizerInstance {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.phonemizer
}

func (c *gCtx) SetPhonemizerInstance(inst instances.PhonemizerInstance) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.phonemizer = inst
}

func (c *gCtx) GetVoicebank(name string) (instances.Voicebank, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	vb, ok := c.voicebanks[name]
	return vb, ok
}

func (c *gCtx) SetVoicebanks(banks map[string]instances.Voicebank) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.voicebanks = banks
}

func (c *gCtx) VoicebankNames() []string {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	names := make([]string, 0, len(c.voicebanks))
	for name := range c.voicebanks {
		names = append(names, name)
	}
	return names
}

func NewCtx(ctx context.Context, config *ServerCfg) Context {
	return &gCtx{ctx: ctx, cfg: config}
}

type wrapped struct {
	Context
	ctx context.Context
}

func (c *wrapped) Deadline() (time.Time, bool) {
	return c.ctx.Deadline()
}

func (c *wrapped) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *wrapped) Err() error {
	return c.ctx.Err()
}

func (c *wrapped) Value(key interface{}) interface{} {
	return c.ctx.Value(key)
}

func WithCancel(ctx Context) (Context, context.CancelFunc) {
	nCtx, cancel := context.WithCancel(ctx)
	return &wrapped{Context: ctx, ctx: nCtx}, cancel
}

func WithDeadline(ctx Context, deadline time.Time) (Context, context.CancelFunc) {
	nCtx, cancel := context.WithDeadline(ctx, deadline)
	return &wrapped{Context: ctx, ctx: nCtx}, cancel
}

func WithTimeout(ctx Context, timeout time.Duration) (Context, context.CancelFunc) {
	nCtx, cancel := context.WithTimeout(ctx, timeout)
	return &wrapped{Context: ctx, ctx: nCtx}, cancel
}
