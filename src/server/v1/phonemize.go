package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/StickynoteStupid/utau/src/datastructures"
	"github.com/StickynoteStupid/utau/src/global"
)

// Phonemize handles synchronous one-shot phonemization, mostly for editor
// previews; batch work goes through the redis request channel instead.
func Phonemize(gCtx global.Context) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		req := datastructures.PhonemizeRequest{}
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(400).SendString("invalid body")
		}
		if len(req.Notes) == 0 {
			return c.Status(400).SendString("no notes")
		}

		ph := gCtx.GetPhonemizerInstance()
		start := time.Now()
		var phonemes []datastructures.Phoneme
		if req.Singer != "" {
			vb, ok := gCtx.GetVoicebank(req.Singer)
			if !ok {
				return c.Status(404).SendString("unknown singer")
			}
			phonemes = ph.ProcessWith(vb, req.Notes, req.PrevNote, req.NextNote)
		} else {
			phonemes = ph.Process(req.Notes, req.PrevNote, req.NextNote)
		}
		wid, _ := uuid.NewRandom()

		data, err := json.Marshal(datastructures.PhonemizeResponse{
			Jid:      req.Jid,
			Wid:      wid.String(),
			Singer:   req.Singer,
			Phonemes: phonemes,
			Time:     time.Since(start).Seconds(),
		})
		if err != nil {
			return c.SendStatus(500)
		}

		c.Set("Content-Type", "application/json")
		return c.Status(200).Send(data)
	}
}
