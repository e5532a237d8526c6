package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/StickynoteStupid/utau/src/configure"
	"github.com/StickynoteStupid/utau/src/datastructures"
	"github.com/StickynoteStupid/utau/src/global"
	"github.com/StickynoteStupid/utau/src/instances"
	"github.com/StickynoteStupid/utau/src/manager"
	"github.com/StickynoteStupid/utau/src/mongo"
	"github.com/StickynoteStupid/utau/src/phonemizer"
	"github.com/StickynoteStupid/utau/src/phonemizer/dictionary"
	"github.com/StickynoteStupid/utau/src/phonemizer/phone"
	"github.com/StickynoteStupid/utau/src/redis"
	"github.com/StickynoteStupid/utau/src/voicebank"
)

func main() {
	ctx, cancel := global.WithCancel(configure.Init(context.Background()))
	defer cancel()

	mongoInst, err := mongo.NewInstance(ctx, ctx.Config().MongoURI, ctx.Config().MongoDB)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start mongo")
	}

	redisInst, err := redis.NewInstance(ctx, ctx.Config().RedisURI)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start redis")
	}

	ctx.SetMongoInstance(mongoInst)
	ctx.SetRedisInstance(redisInst)

	phonemizerInst, err := newPhonemizer(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start phonemizer")
	}

	ctx.SetPhonemizerInstance(phonemizerInst)

	loadVoicebanks(ctx, phonemizerInst)

	done := manager.New(ctx)

	<-done
}

func newPhonemizer(ctx global.Context) (instances.PhonemizerInstance, error) {
	phones, err := phone.DefaultTable()
	if err != nil {
		return nil, err
	}
	fallbacks, err := phone.DefaultFallbacks()
	if err != nil {
		return nil, err
	}

	dict := dictionary.New()
	if path := ctx.Config().DictionaryPath; path != "" {
		dict.LoadAsync(func() (io.ReadCloser, error) {
			return os.Open(path)
		})
	} else {
		dict.LoadStarterAsync()
	}

	return phonemizer.New(phonemizer.Options{
		Dictionary:      dict,
		Phones:          phones,
		Fallbacks:       fallbacks,
		ConsonantLength: ctx.Config().ConsonantLength,
	}), nil
}

// loadVoicebanks reads the registry and loads each bank. A bank that fails
// to load is skipped; the service still runs, degraded to context-free units
// for singers that never arrive.
func loadVoicebanks(ctx global.Context, ph instances.PhonemizerInstance) {
	configs, err := ctx.GetMongoInstance().FetchVoicebanks(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch voicebank registry")
	}

	banks := map[string]instances.Voicebank{}
	var defaultBank instances.Voicebank
	for _, cfg := range configs {
		vb, err := voicebank.Load(resolvePath(ctx.Config().VoicebankDir, cfg))
		if err != nil {
			logrus.WithError(err).WithField("name", cfg.Name).Error("failed to load voicebank")
			continue
		}
		name := cfg.Name
		if name == "" {
			name = vb.Name()
		}
		banks[name] = vb
		if cfg.Default || name == ctx.Config().DefaultSinger {
			defaultBank = vb
		}
		logrus.WithField("name", name).Info("voicebank loaded")
	}

	ctx.SetVoicebanks(banks)
	if defaultBank != nil {
		ph.SetSinger(defaultBank)
	}
}

func resolvePath(dir string, cfg datastructures.VoicebankConfig) string {
	if dir == "" || filepath.IsAbs(cfg.Path) {
		return cfg.Path
	}
	return filepath.Join(dir, cfg.Path)
}
