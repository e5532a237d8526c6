package manager

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/StickynoteStupid/utau/src/datastructures"
	"github.com/StickynoteStupid/utau/src/global"
	"github.com/StickynoteStupid/utau/src/server"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func New(gCtx global.Context) <-chan struct{} {
	done := make(chan struct{})

	serverDone := server.New(gCtx)

	m := &Manager{gCtx: gCtx}
	go m.listen()

	go func() {
		<-gCtx.Done()
		<-serverDone
		close(done)
	}()

	logrus.Info("manager started")

	return done
}

type Manager struct {
	gCtx global.Context
}

// listen consumes phonemize requests off the request channel, one at a time,
// until the context ends.
func (m *Manager) listen() {
	ch := make(chan string)
	m.gCtx.GetRedisInstance().Subscribe(m.gCtx, ch, m.gCtx.Config().RedisRequestEvent)

	go func() {
		<-m.gCtx.Done()
		close(ch)
	}()

	for msg := range ch {
		m.handle(msg)
	}
}

func (m *Manager) handle(msg string) {
	defer func() {
		if err := recover(); err != nil {
			logrus.WithField("err", err).Error("panic in phonemize handler")
		}
	}()

	req := datastructures.PhonemizeRequest{}
	if err := json.UnmarshalFromString(msg, &req); err != nil {
		logrus.WithError(err).Error("failed to parse phonemize request")
		return
	}
	if len(req.Notes) == 0 {
		return
	}

	start := time.Now()

	ph := m.gCtx.GetPhonemizerInstance()
	var phonemes []datastructures.Phoneme
	if vb, ok := m.gCtx.GetVoicebank(req.Singer); req.Singer != "" && ok {
		phonemes = ph.ProcessWith(vb, req.Notes, req.PrevNote, req.NextNote)
	} else {
		if req.Singer != "" {
			logrus.WithField("singer", req.Singer).Warn("unknown singer, using current")
		}
		phonemes = ph.Process(req.Notes, req.PrevNote, req.NextNote)
	}

	wid, _ := uuid.NewRandom()

	resp, err := json.MarshalToString(datastructures.PhonemizeResponse{
		Jid:      req.Jid,
		Wid:      wid.String(),
		Singer:   req.Singer,
		Phonemes: phonemes,
		Time:     time.Since(start).Seconds(),
	})
	if err == nil {
		if err = m.gCtx.GetRedisInstance().Set(m.gCtx, fmt.Sprintf("phonemized:%s", wid.String()), resp, time.Minute*10); err != nil {
			logrus.WithError(err).Error("failed to cache phonemize response")
		}
		if req.ResponseEvent != "" {
			if err = m.gCtx.GetRedisInstance().Publish(m.gCtx, req.ResponseEvent, resp); err != nil {
				logrus.WithError(err).Error("failed to publish phonemize response")
			}
		}
	}

	job, err := json.MarshalToString(datastructures.RenderJob{
		Wid:      wid.String(),
		Singer:   req.Singer,
		Notes:    req.Notes,
		Phonemes: phonemes,
	})
	if err == nil {
		if err = m.gCtx.GetRedisInstance().SAdd(m.gCtx, m.gCtx.Config().RedisRenderSetKey, job); err != nil {
			logrus.WithError(err).Error("failed to queue render job")
		}
	}
}
