package v1

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/StickynoteStupid/utau/src/global"
)

// Phonemes serves the cached result of a phonemize job by worker id.
func Phonemes(ctx global.Context) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		wid, err := uuid.Parse(c.Params("wid"))
		if err != nil {
			return c.SendStatus(404)
		}

		r := ctx.GetRedisInstance()
		result, err := r.Get(ctx, fmt.Sprintf("phonemized:%s", wid.String()))
		if err != nil {
			if err == redis.Nil {
				return c.SendStatus(404)
			}
			logrus.WithError(err).Error("failed to get phonemes from redis")
			return c.SendStatus(500)
		}

		c.Set("Content-Type", "application/json")
		return c.Status(200).SendString(result)
	}
}
