package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/jeromeheuze/puzzle-generator/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	events := handlers.NewEvents(a.logger, a.ws)
	generate := handlers.NewGenerateHandler(a.logger, a.db, events, createRand())
	device := handlers.NewDeviceHandler(a.logger, a.db, a.auth, a.jwt)

	a.router.HandleFunc("POST /v1/generate", generate.Batch)
	a.router.HandleFunc("GET /v1/status", generate.Status)

	a.router.HandleFunc("POST /v1/device/register", device.Register)
	a.router.HandleFunc("GET /v1/device/commands", device.Poll)
	a.router.HandleFunc("POST /v1/device/status", device.Heartbeat)
	a.router.HandleFunc("POST /v1/device/commands/{id}/result", device.Report)
	a.router.HandleFunc("POST /v1/devices/{id}/commands", device.Enqueue)

	a.router.HandleFunc("/v1/events", events.Connect)
}
