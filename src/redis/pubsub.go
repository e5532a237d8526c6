package redis

import (
	"context"

	"github.com/sirupsen/logrus"
)

type redisSub struct {
	ch chan string
}

// Publish sends data to a redis channel.
func (inst *redisInstance) Publish(ctx context.Context, channel string, data string) error {
	return inst.c.Publish(ctx, channel, data).Err()
}

// Subscribe registers ch for every channel named in subscribeTo. The
// registration lives until ctx ends; the last subscriber of a channel takes
// the underlying redis subscription down with it.
func (inst *redisInstance) Subscribe(ctx context.Context, ch chan string, subscribeTo ...string) {
	inst.subsMtx.Lock()
	defer inst.subsMtx.Unlock()
	sub := &redisSub{ch}
	for _, e := range subscribeTo {
		if _, ok := inst.subs[e]; !ok {
			if err := inst.p.Subscribe(ctx, e); err != nil {
				panic(err)
			}
		}
		inst.subs[e] = append(inst.subs[e], sub)
	}

	go func() {
		<-ctx.Done()
		inst.subsMtx.Lock()
		defer inst.subsMtx.Unlock()
		for _, e := range subscribeTo {
			inst.remove(e, sub)
		}
	}()
}

// remove drops sub from a channel's fan-out list, swap-deleting to keep the
// slice compact. Caller holds subsMtx.
func (inst *redisInstance) remove(channel string, sub *redisSub) {
	list := inst.subs[channel]
	for i, v := range list {
		if v != sub {
			continue
		}
		list[i] = list[len(list)-1]
		inst.subs[channel] = list[:len(list)-1]
		if len(inst.subs[channel]) == 0 {
			delete(inst.subs, channel)
			if err := inst.p.Unsubscribe(context.Background(), channel); err != nil {
				logrus.WithError(err).Error("failed to unsubscribe")
			}
		}
		return
	}
}
