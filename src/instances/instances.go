package instances

import (
	"context"
	"time"

	"github.com/StickynoteStupid/utau/src/datastructures"
)

type RedisInstance interface {
	Ping(ctx context.Context) error
	Subscribe(ctx context.Context, ch chan string, subscribeTo ...string)
	Publish(ctx context.Context, channel string, data string) error
	SAdd(ctx context.Context, set string, values ...interface{}) error
	Set(ctx context.Context, key string, value string, expiry time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

type MongoInstance interface {
	Ping(ctx context.Context) error
	FetchVoicebanks(ctx context.Context) ([]datastructures.VoicebankConfig, error)
}

// Voicebank is the capability the unit resolver queries. Implementations must
// keep TryResolveUnit cheap; it is hit once per symbol pair plus a handful of
// fallback probes on a miss.
type Voicebank interface {
	Name() string
	TryResolveUnit(label string, tone int) (datastructures.UnitSample, bool)
}

type PhonemizerInstance interface {
	Process(notes []datastructures.Note, prev, next *datastructures.Note) []datastructures.Phoneme
	ProcessWith(vb Voicebank, notes []datastructures.Note, prev, next *datastructures.Note) []datastructures.Phoneme
	SetSinger(vb Voicebank)
	SetConsonantLength(ticks int)
}
