package coverage

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Evidence categories attached to extracted spans.
const (
	CategoryWorkAchievement     = "work_achievement"
	CategoryProjectDescription  = "project_description"
	CategoryProjectAchievement  = "project_achievement"
	CategoryEducationCredential = "education_credential"
	CategoryEducationCoursework = "education_coursework"
	CategoryCertCredential      = "certification_credential"
)

// ExtractEvidence flattens a profile into evidence spans for matching.
// Evidence comes from experience bullets, project descriptions and
// achievements, education credentials and coursework, and certifications.
// Each span keeps its source type and ID so generated bullets can be traced
// back to their origin.
//
// Bullets carry evidence IDs assigned at ingestion when available; spans
// without one get a deterministic positional ID.
func ExtractEvidence(profile *types.Profile) []types.EvidenceSpan {
	var items []types.EvidenceSpan

	for _, exp := range profile.Experiences {
		for i, bullet := range exp.Bullets {
			id := fmt.Sprintf("%s-bullet-%d", exp.ID, i)
			if i < len(exp.EvidenceIDs) {
				id = exp.EvidenceIDs[i]
			}
			items = append(items, types.EvidenceSpan{
				ID:         id,
				SourceType: types.SourceExperience,
				SourceID:   exp.ID,
				Text:       bullet,
				Category:   CategoryWorkAchievement,
			})
		}
	}

	for _, project := range profile.Projects {
		if project.Description != "" {
			items = append(items, types.EvidenceSpan{
				ID:         project.ID + "-desc",
				SourceType: types.SourceProject,
				SourceID:   project.ID,
				Text:       project.Description,
				Category:   CategoryProjectDescription,
			})
		}
		for i, achievement := range project.Achievements {
			id := fmt.Sprintf("%s-achievement-%d", project.ID, i)
			if i < len(project.EvidenceIDs) {
				id = project.EvidenceIDs[i]
			}
			items = append(items, types.EvidenceSpan{
				ID:         id,
				SourceType: types.SourceProject,
				SourceID:   project.ID,
				Text:       achievement,
				Category:   CategoryProjectAchievement,
			})
		}
	}

	for _, edu := range profile.Education {
		// The degree line itself is evidence, e.g. "B.S. Computer Science"
		// matches "CS degree required".
		items = append(items, types.EvidenceSpan{
			ID:         edu.ID + "-degree",
			SourceType: types.SourceEducation,
			SourceID:   edu.ID,
			Text:       fmt.Sprintf("%s from %s", edu.Degree, edu.Institution),
			Category:   CategoryEducationCredential,
		})
		for i, course := range edu.Coursework {
			items = append(items, types.EvidenceSpan{
				ID:         fmt.Sprintf("%s-course-%d", edu.ID, i),
				SourceType: types.SourceEducation,
				SourceID:   edu.ID,
				Text:       course,
				Category:   CategoryEducationCoursework,
			})
		}
	}

	for _, cert := range profile.Certifications {
		text := cert.Name
		if cert.Issuer != "" {
			text = fmt.Sprintf("%s (%s)", cert.Name, cert.Issuer)
		}
		items = append(items, types.EvidenceSpan{
			ID:         cert.ID + "-cert",
			SourceType: types.SourceCertification,
			SourceID:   cert.ID,
			Text:       text,
			Category:   CategoryCertCredential,
		})
	}

	return items
}
