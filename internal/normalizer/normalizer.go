// Package normalizer turns raw sensor payloads into canonical readings.
// Every function here is pure; malformed input degrades to an absent field, never to an error.
package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"hydro_monitor/internal/models"
)

// Payload keys.
const (
	KeyTempAir    = "temp_air"
	KeyHumAir     = "hum_air"
	KeyPH         = "ph"
	KeyEC         = "ec"
	KeyECmScm     = "ec_mScm"
	KeyECuScm     = "ec_uScm"
	KeyTempWater  = "temp_water"
	KeyTempPH     = "t_ph"
	KeyTempEC     = "t_ec"
	KeyDistanceCM = "distance_cm"
	KeyLevel1     = "level1"
	KeyLevel2     = "level2"
	KeyLevel3     = "level3"
	KeyLevel4     = "level4"
)

// Probe plausibility window (exclusive) and the EC probe's disconnected marker.
const (
	minProbeTempC        = -40.0
	maxProbeTempC        = 125.0
	disconnectedProbeC   = -1000.0
	microSiemensPerMilli = 1000.0
)

var (
	highLevelTokens = map[string]struct{}{
		"alto": {}, "high": {}, "arriba": {}, "on": {}, "1": {}, "true": {},
	}
	lowLevelTokens = map[string]struct{}{
		"bajo": {}, "low": {}, "abajo": {}, "off": {}, "0": {}, "false": {},
	}
)

// conductivityRule converts the value stored under key to mS/cm.
type conductivityRule struct {
	key     string
	convert func(v float64) float64
}

// conductivityRules are consulted in order; the first key present in the payload decides the result,
// even when its value turns out not to be numeric.
var conductivityRules = []conductivityRule{
	{key: KeyEC, convert: func(v float64) float64 { return v }},
	{key: KeyECmScm, convert: func(v float64) float64 { return v }},
	{key: KeyECuScm, convert: func(v float64) float64 { return v / microSiemensPerMilli }},
}

// CoerceNumber returns raw as a finite float, or nil when it is missing, non-numeric, NaN or infinite.
func CoerceNumber(raw any) *float64 {
	var (
		v   float64
		err error
	)
	switch x := raw.(type) {
	case nil:
		return nil
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int8:
		v = float64(x)
	case int16:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint8:
		v = float64(x)
	case uint16:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	case json.Number:
		v, err = strconv.ParseFloat(string(x), 64)
	case string:
		v, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return nil
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// CoerceLevel maps a level token onto LevelHigh or LevelLow, ignoring case and surrounding whitespace.
func CoerceLevel(raw any) *models.Level {
	if raw == nil {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(fmt.Sprint(raw)))
	if _, ok := highLevelTokens[s]; ok {
		return models.LevelHigh.Ptr()
	}
	if _, ok := lowLevelTokens[s]; ok {
		return models.LevelLow.Ptr()
	}
	return nil
}

// ReconcileConductivity returns electrical conductivity in mS/cm.
func ReconcileConductivity(p Payload) *float64 {
	for _, rule := range conductivityRules {
		if !p.Has(rule.key) {
			continue
		}
		v := CoerceNumber(p[rule.key])
		if v == nil {
			return nil
		}
		ec := rule.convert(*v)
		return &ec
	}
	return nil
}

// FuseWaterTemperature prefers a direct temp_water field. Without one it averages the
// temperature probes of the pH and EC sensors, skipping implausible values.
func FuseWaterTemperature(p Payload) *float64 {
	if p.Has(KeyTempWater) {
		return CoerceNumber(p[KeyTempWater])
	}

	tPH := CoerceNumber(p[KeyTempPH])
	tEC := CoerceNumber(p[KeyTempEC])
	phOK := plausibleProbeTemp(tPH)
	ecOK := plausibleProbeTemp(tEC) && *tEC != disconnectedProbeC

	switch {
	case phOK && ecOK:
		avg := (*tPH + *tEC) / 2.0
		return &avg
	case phOK:
		return tPH
	case ecOK:
		return tEC
	default:
		return nil
	}
}

func plausibleProbeTemp(v *float64) bool {
	return v != nil && *v > minProbeTempC && *v < maxProbeTempC
}

// Normalize builds the canonical reading for p, stamped with now (UTC, whole seconds).
func Normalize(p Payload, now time.Time) models.Reading {
	return models.Reading{
		TempAir:    CoerceNumber(p[KeyTempAir]),
		HumAir:     CoerceNumber(p[KeyHumAir]),
		PH:         CoerceNumber(p[KeyPH]),
		EC:         ReconcileConductivity(p),
		TempWater:  FuseWaterTemperature(p),
		DistanceCM: CoerceNumber(p[KeyDistanceCM]),
		Level1:     CoerceLevel(p[KeyLevel1]),
		Level2:     CoerceLevel(p[KeyLevel2]),
		Level3:     CoerceLevel(p[KeyLevel3]),
		Level4:     CoerceLevel(p[KeyLevel4]),
		Timestamp:  now.UTC().Truncate(time.Second),
	}
}
