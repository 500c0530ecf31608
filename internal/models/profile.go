package models

import "time"

type StudentProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	Bio                *string   `json:"bio"`
	University         *string   `json:"university"`
	Degree             *string   `json:"degree"`
	Skills             *[]string `json:"skills"`
	HourlyRate         *float64  `json:"hourly_rate"`
	AvatarURL          *string   `json:"avatar_url"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type EmployerProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	CompanyName        *string   `json:"company_name"`
	Bio                *string   `json:"bio"`
	Website            *string   `json:"website"`
	Location           *string   `json:"location"`
	AvatarURL          *string   `json:"avatar_url"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
