package handlers

import (
	"strings"
)

func validateStudentOnboardingRequest(req studentOnboardingRequest) string {
	if strings.TrimSpace(req.Bio) == "" {
		return "bio is required"
	}
	if strings.TrimSpace(req.University) == "" {
		return "university is required"
	}
	if strings.TrimSpace(req.Degree) == "" {
		return "degree is required"
	}
	if len(req.Skills) == 0 {
		return "skills must contain at least one item"
	}
	for _, skill := range req.Skills {
		if strings.TrimSpace(skill) == "" {
			return "skills must not contain empty values"
		}
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return "hourly_rate must be 0 or greater"
	}
	return ""
}

func validateEmployerOnboardingRequest(req employerOnboardingRequest) string {
	if strings.TrimSpace(req.CompanyName) == "" {
		return "company_name is required"
	}
	if strings.TrimSpace(req.Bio) == "" {
		return "bio is required"
	}
	if strings.TrimSpace(req.Location) == "" {
		return "location is required"
	}
	return ""
}

func validateStudentProfileUpdateRequest(req updateStudentProfileRequest) string {
	if req.Bio != nil && strings.TrimSpace(*req.Bio) == "" {
		return "bio must not be empty"
	}
	if req.University != nil && strings.TrimSpace(*req.University) == "" {
		return "university must not be empty"
	}
	if req.Degree != nil && strings.TrimSpace(*req.Degree) == "" {
		return "degree must not be empty"
	}
	if req.Skills != nil {
		for _, skill := range *req.Skills {
			if strings.TrimSpace(skill) == "" {
				return "skills must not contain empty values"
			}
		}
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return "hourly_rate must be 0 or greater"
	}
	return ""
}

func validateEmployerProfileUpdateRequest(req updateEmployerProfileRequest) string {
	if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) == "" {
		return "company_name must not be empty"
	}
	if req.Bio != nil && strings.TrimSpace(*req.Bio) == "" {
		return "bio must not be empty"
	}
	if req.Location != nil && strings.TrimSpace(*req.Location) == "" {
		return "location must not be empty"
	}
	return ""
}
