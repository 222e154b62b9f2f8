package models

import "time"

// TimestampLayout is the wire and storage format of Reading.Timestamp: UTC, second precision, literal Z.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Reading is a canonical sensor record. Nil pointer fields mean the value was absent or unusable.
type Reading struct {
	ID         string    `json:"_id,omitempty"`
	TempAir    *float64  `json:"temp_air"`    // °C
	HumAir     *float64  `json:"hum_air"`     // %RH
	PH         *float64  `json:"ph"`          // pH units
	EC         *float64  `json:"ec"`          // mS/cm
	TempWater  *float64  `json:"temp_water"`  // °C
	DistanceCM *float64  `json:"distance_cm"` // cm
	Level1     *Level    `json:"level1"`
	Level2     *Level    `json:"level2"`
	Level3     *Level    `json:"level3"`
	Level4     *Level    `json:"level4"`
	Timestamp  time.Time `json:"ts"`
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
