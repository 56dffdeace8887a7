package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Analysis status values for a profile's colour analysis.
// An empty status means the profile has never been analyzed.
const (
	AnalysisStatusAnalyzed = "analyzed"
	AnalysisStatusFallback = "fallback"
)

// Palette is an ordered, ranked list of hex colour tokens.
// Stored as a JSON array (jsonb on Postgres).
type Palette []string

// Value implements driver.Valuer.
func (p Palette) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *Palette) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported palette column type %T", value)
	}
}

// Profile holds a user's body measurements, photo reference, and derived
// colour-analysis result. One row per user, upserted on user_id.
//
// Season, Undertone, Palette and AnalysisStatus are written together: they
// are either all absent (never analyzed) or all present.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	// Measurement fields are free text, as entered by the user.
	Height string `json:"height"`
	Chest  string `json:"chest"`
	Weight string `json:"weight"`
	Waist  string `json:"waist"`
	Gender string `json:"gender"`
	Age    string `json:"age"`

	// UserPhoto is the relative storage path of the profile photo.
	UserPhoto string `json:"user_photo"`

	Season         string  `json:"season,omitempty"`
	Undertone      string  `json:"undertone,omitempty"`
	Palette        Palette `gorm:"type:jsonb" json:"palette,omitempty"`
	AnalysisStatus string  `json:"analysis_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Analyzed reports whether a colour analysis result (genuine or fallback)
// has been persisted for this profile.
func (p *Profile) Analyzed() bool {
	return p.AnalysisStatus != ""
}

// ColourAnalysis is the derived triple produced by the colour pipeline.
type ColourAnalysis struct {
	Season    string  `json:"season"`
	Undertone string  `json:"undertone"`
	Palette   Palette `json:"palette"`
	Status    string  `json:"status,omitempty"`
}
