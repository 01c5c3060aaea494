package handlers

import (
	"strings"

	"github.com/RamChoudhary007/ScholarGuide/internal/models"
)

const maxSkills = 50

func validateSkills(skills *[]string) string {
	if skills == nil {
		return ""
	}
	if len(*skills) > maxSkills {
		return "too many skills"
	}
	for _, skill := range *skills {
		if strings.TrimSpace(skill) == "" {
			return "skills must not contain empty entries"
		}
	}
	return ""
}

func validateEducation(entries *[]models.Education) string {
	if entries == nil {
		return ""
	}
	for _, entry := range *entries {
		if strings.TrimSpace(entry.Institution) == "" {
			return "education entries need an institution"
		}
	}
	return ""
}
