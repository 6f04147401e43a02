// sanclaudio-sim soak-tests the pursuit core headlessly: a scripted driver
// laps a grid city committing periodic crimes while the wanted subsystem
// escalates, deploys obstacles and gets paid off. State is exported via a
// localhost debug server (metrics, pprof, snapshot).
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"sanclaudio/internal/audio"
	"sanclaudio/internal/sim"
	"sanclaudio/internal/wanted"
)

func main() {
	var (
		addr   = flag.String("addr", "127.0.0.1:6060", "debug server listen address (keep on localhost)")
		tuning = flag.String("tuning", "", "optional YAML tuning override file")
		dt     = flag.Float64("dt", 0.05, "fixed simulation step in seconds")
		sound  = flag.Bool("sound", false, "synthesize cues on the local audio device")
		quiet  = flag.Bool("quiet", false, "suppress per-event logging")
	)
	flag.Parse()

	seed := uint64(1)
	if v := os.Getenv("SANCLAUDIO_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			log.Fatalf("SANCLAUDIO_SEED: %v", err)
		}
		seed = n
	}

	tun := wanted.DefaultTuning()
	if *tuning != "" {
		t, err := wanted.LoadTuning(*tuning)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
		tun = t
	}

	var snd *audio.Engine
	if *sound {
		e, err := audio.NewEngine()
		if err != nil {
			log.Fatalf("audio: %v", err)
		}
		snd = e
	}

	world := sim.NewGridWorld()
	pool := sim.NewVehiclePool()
	driver := sim.NewDriver(pool, 20000)
	camera := sim.NewChaseCamera(driver)
	sinks := &sim.TextSinks{}
	input := &sim.QueueInput{}

	sys := wanted.NewSystem(seed, wanted.Facades{
		Player:   driver,
		Vehicles: pool,
		NPCs:     sinks,
		Audio:    snd, // nil engine is silent
		World:    world,
		Camera:   camera,
		UI:       sinks,
		Input:    input,
		Models:   &sim.StaticModels{IDs: map[string]bool{"police_cruiser": true}},
	}, wanted.Layout{
		BribeStars: []wanted.Vec3{{X: 167.5, Z: 35.5}, {X: -200.5, Z: 101.5}},
		EscapeZones: []wanted.EscapeZone{
			{Pos: wanted.Vec3{X: 68.5, Z: -130.5}, Radius: 5, Name: "Dock Alley"},
		},
		RecoverySites: []wanted.RecoverySite{
			{Pos: wanted.Vec3{X: 35.5, Z: 35.5}, Name: "Pay-N-Spray"},
		},
	}, tun)

	var mu sync.Mutex
	go func() {
		router := sim.NewDebugRouter(func() wanted.Snapshot {
			mu.Lock()
			defer mu.Unlock()
			return sys.Snapshot()
		})
		log.Printf("debug server on http://%s (metrics, /debug/pprof, /snapshot)", *addr)
		if err := http.ListenAndServe(*addr, router); err != nil {
			log.Fatalf("debug server: %v", err)
		}
	}()

	log.Printf("soak start: seed=%d dt=%gs", seed, *dt)
	step := time.Duration(*dt * float64(time.Second))
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	crimeTimer := 0.0
	lastLevel := 0
	for range ticker.C {
		mu.Lock()
		start := time.Now()

		driver.Advance(*dt)
		driver.Remount() // recover from carjacks so the lap continues

		// Commit a crime every few seconds; heat only ever goes up until a
		// bribe, an escape, or a spray clears it.
		crimeTimer -= *dt
		if crimeTimer <= 0 {
			crimeTimer = 4.0
			sys.AddHeat(1.0)
		}
		// Always willing to pay when the shop offers.
		if sinks.PromptOn {
			input.Press(wanted.ActionInteract)
		}

		sys.Update(*dt)

		cleared := lastLevel > 0 && sys.Level == 0
		sim.RecordTick(sys, pool, time.Since(start), cleared)
		if !*quiet && sys.Level != lastLevel {
			log.Printf("level %d -> %d (heat %.1f, pursuers %d, strips %d, blocks %d)",
				lastLevel, sys.Level, sys.Heat, len(sys.Pursuers), len(sys.Strips), len(sys.Blocks))
		}
		lastLevel = sys.Level
		mu.Unlock()
	}
}
