package domain

import (
	"fmt"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account document in the customer collection.
type User struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name               string             `json:"name" bson:"name"`
	Email              string             `json:"email" bson:"email"`
	PasswordHash       string             `json:"-" bson:"password"`
	Age                int                `json:"age" bson:"age"`
	HeightCM           float64            `json:"height" bson:"height"`
	WeightKG           float64            `json:"weight" bson:"weight"`
	BMI                float64            `json:"bmi" bson:"bmi"`
	Allergies          []string           `json:"allergies" bson:"allergies"`
	HealthConditions   string             `json:"health_conditions" bson:"health_conditions"`
	ActivityLevel      string             `json:"activity_level" bson:"activity_level"`
	DietaryPreferences []string           `json:"dietary_preferences" bson:"dietary_preferences"`
	HealthGoals        string             `json:"health_goals" bson:"health_goals"`
}

// UserProfile is the health context inlined into the rating prompt.
// It is supplied per analysis call and never mutated by the core.
type UserProfile struct {
	BMI                string `json:"bmi"`
	Allergies          string `json:"allergies"`
	HealthConditions   string `json:"health_conditions"`
	DietaryPreferences string `json:"dietary_preferences"`
	ActivityLevel      string `json:"activity_level"`
	HealthGoals        string `json:"health_goals"`
}

// ProfileOf builds the prompt-facing profile from a stored account,
// substituting the defaults the original documents used for absent fields.
func ProfileOf(u *User) UserProfile {
	bmi := "Not provided"
	if u.BMI > 0 {
		bmi = fmt.Sprintf("%.2f", u.BMI)
	}
	conditions := u.HealthConditions
	if conditions == "" {
		conditions = "None"
	}
	prefs := strings.Join(u.DietaryPreferences, ", ")
	if prefs == "" {
		prefs = "None"
	}
	activity := u.ActivityLevel
	if activity == "" {
		activity = "Moderate"
	}
	goals := u.HealthGoals
	if goals == "" {
		goals = "General well-being"
	}
	return UserProfile{
		BMI:                bmi,
		Allergies:          strings.Join(u.Allergies, ", "),
		HealthConditions:   conditions,
		DietaryPreferences: prefs,
		ActivityLevel:      activity,
		HealthGoals:        goals,
	}
}

// PromptSummary renders the profile as the textual block embedded in the
// rating prompt's context document.
func (p UserProfile) PromptSummary() string {
	return fmt.Sprintf(
		"BMI: %s; Allergies: %s; Health Conditions: %s; Dietary Preferences: %s; Activity Level: %s; Health Goals: %s",
		p.BMI, p.Allergies, p.HealthConditions, p.DietaryPreferences, p.ActivityLevel, p.HealthGoals,
	)
}

// CalculateBMI computes body mass index from weight in kilograms and height
// in centimeters, rounded to two decimals.
func CalculateBMI(weightKG, heightCM float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	meters := heightCM / 100
	bmi := weightKG / (meters * meters)
	return math.Round(bmi*100) / 100
}
