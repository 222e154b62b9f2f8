package service

import (
	"context"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"hydro_monitor/internal/normalizer"
)

// ----------- Simulation constants -----------
const (
	simAirTempC      = 24.0 // °C
	simAirHumidity   = 60.0 // %RH
	simPH            = 6.0  // pH units
	simECmScm        = 1.6  // mS/cm
	simWaterTempC    = 21.0 // °C
	simDistanceCM    = 30.0 // cm from sensor to water surface
	simProbeFailRate = 10   // one in N ticks the EC probe reports disconnected
)

// simLevelTokens mixes the encodings seen from different float-switch firmwares.
var simLevelTokens = []string{"ON", "off", "alto", "bajo", "HIGH", "low", "1", "0", "true", "false"}

// SimulatorService emits synthetic sensor payloads through the ingest pipeline.
type SimulatorService struct {
	ingest Ingestion
	rng    *rand.Rand
}

// NewSimulatorService returns a simulator seeded from the wall clock.
func NewSimulatorService(ingest Ingestion) *SimulatorService {
	seed := uint64(time.Now().UnixNano())
	return &SimulatorService{
		ingest: ingest,
		rng:    rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// Run ingests one payload per tick until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// storage failures are counted by the ingest pipeline itself
			_, _ = s.ingest.Ingest(ctx, s.nextPayload())
		}
	}
}

// nextPayload builds one payload using the same heterogeneous encodings real devices send.
func (s *SimulatorService) nextPayload() normalizer.Payload {
	p := normalizer.Payload{
		normalizer.KeyTempAir:    s.jitter(simAirTempC, 2),
		normalizer.KeyHumAir:     strconv.FormatFloat(s.jitter(simAirHumidity, 5), 'f', 1, 64),
		normalizer.KeyPH:         s.jitter(simPH, 0.3),
		normalizer.KeyDistanceCM: s.jitter(simDistanceCM, 3),
	}

	if s.rng.IntN(2) == 0 {
		p[normalizer.KeyEC] = s.jitter(simECmScm, 0.2)
	} else {
		p[normalizer.KeyECuScm] = s.jitter(simECmScm*1000, 200)
	}

	tEC := s.jitter(simWaterTempC, 0.5)
	if s.rng.IntN(simProbeFailRate) == 0 {
		tEC = -1000
	}
	p[normalizer.KeyTempPH] = s.jitter(simWaterTempC, 0.5)
	p[normalizer.KeyTempEC] = tEC

	for _, key := range []string{normalizer.KeyLevel1, normalizer.KeyLevel2, normalizer.KeyLevel3, normalizer.KeyLevel4} {
		p[key] = simLevelTokens[s.rng.IntN(len(simLevelTokens))]
	}
	return p
}

// jitter returns center ± spread rounded to two decimals.
func (s *SimulatorService) jitter(center, spread float64) float64 {
	v := center + (s.rng.Float64()*2-1)*spread
	return math.Round(v*100) / 100
}
