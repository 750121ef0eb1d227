package user

import "time"

// DefaultLanguage is assumed whenever a profile does not specify one.
const DefaultLanguage = "English"

// SupportedLanguages lists the regional languages a profile may select.
var SupportedLanguages = []string{
	"English",
	"Hindi",
	"Bengali",
	"Gujarati",
	"Kannada",
	"Malayalam",
	"Marathi",
	"Tamil",
	"Telugu",
	"Urdu",
	"Punjabi",
}

// IsSupportedLanguage reports whether lang is one of the supported regional languages.
func IsSupportedLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// User is the account profile. The chat pipeline reads PreferredLanguage
// and MentalHealthGoals; everything else belongs to signup/signin.
type User struct {
	ID                 string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name               string    `gorm:"size:120;not null" json:"name"`
	Email              string    `gorm:"size:190;uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"size:255;not null" json:"-"`
	DOB                time.Time `json:"dob"`
	Gender             string    `gorm:"size:20" json:"gender"`
	PreferredLanguage  string    `gorm:"size:40;default:English" json:"preferredLanguage"`
	OnboardingComplete bool      `gorm:"default:false" json:"onboardingComplete"`
	MentalHealthGoals  []string  `gorm:"serializer:json" json:"mentalHealthGoals"`
	Role               string    `gorm:"size:20;default:student" json:"role"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
