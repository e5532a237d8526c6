package v1

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"

	"github.com/StickynoteStupid/utau/src/global"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Api(ctx global.Context, app fiber.Router) {
	app.Post("/phonemize", Phonemize(ctx))

	app.Get("/phonemes/:wid", Phonemes(ctx))

	app.Get("/voicebanks", Voicebanks(ctx))
}
