package v1

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/StickynoteStupid/utau/src/global"
)

func Voicebanks(gCtx global.Context) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		names := gCtx.VoicebankNames()
		sort.Strings(names)

		data, err := json.Marshal(names)
		if err != nil {
			return c.SendStatus(500)
		}

		c.Set("Content-Type", "application/json")
		return c.Status(200).Send(data)
	}
}
