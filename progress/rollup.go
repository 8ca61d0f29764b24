package progress

import (
	"time"

	courseModels "scl/models/course"
)

// Member is one cohort member's ledger state as loaded by the caller.
// HasLedger distinguishes "no progress yet" from a present-but-empty
// ledger; a member without a ledger still counts toward the denominator.
type Member struct {
	UserID         uint
	Name           string
	Email          string
	HasLedger      bool
	Ledger         []courseModels.CompletedModule
	IsCompleted    bool
	CertificateURL string
	UpdatedAt      *time.Time
}

// MemberSummary is one member's reconciled progress within a rollup
type MemberSummary struct {
	UserID         uint       `json:"userId"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	HasLedger      bool       `json:"hasProgress"`
	IsCompleted    bool       `json:"isCompleted"`
	CertificateURL string     `json:"certificateUrl,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
	Progress       Summary    `json:"progress"`
}

// Rollup is the cohort-level aggregation of all member ledgers
type Rollup struct {
	TotalUsers int             `json:"totalUsers"`
	Users      []MemberSummary `json:"users"`
	Batch      Summary         `json:"batchProgress"`
}

// RollupBatch aggregates per-member reconciliation results into cohort
// statistics.
//
// Cohort percentages use the sum semantics: the numerator is the sum of
// each member's deduplicated completed count, the denominator is
// userCount x liveTotal. Numerator and denominator expand together, so a
// cohort where every member finished everything reads 100. (A cross-user
// union numerator over the unexpanded denominator is the rejected
// alternative: it reads 100 as soon as one member finishes.)
//
// The cohort detailed tree is a separate concept: completed lessons and
// topics merged across the whole cohort and deduplicated, used for
// display only, never for percentage math.
func RollupBatch(members []Member, t *Tree) Rollup {
	users := make([]MemberSummary, 0, len(members))

	sumModules := 0
	sumLessons := 0

	type mergedLesson struct {
		lessonID uint
		topicSet map[uint]bool
		topics   []uint
	}
	type mergedModule struct {
		moduleID uint
		lessons  map[uint]*mergedLesson
		order    []uint
	}
	merged := make(map[uint]*mergedModule)
	var mergedOrder []uint

	for _, member := range members {
		summary := Reconcile(member.Ledger, member.IsCompleted, t)
		sumModules += summary.Modules.Completed
		sumLessons += summary.Lessons.Completed

		for _, dm := range summary.Detailed {
			mm, ok := merged[dm.ModuleID]
			if !ok {
				mm = &mergedModule{moduleID: dm.ModuleID, lessons: make(map[uint]*mergedLesson)}
				merged[dm.ModuleID] = mm
				mergedOrder = append(mergedOrder, dm.ModuleID)
			}
			for _, dl := range dm.CompletedLessons {
				ml, ok := mm.lessons[dl.LessonID]
				if !ok {
					ml = &mergedLesson{lessonID: dl.LessonID, topicSet: make(map[uint]bool)}
					mm.lessons[dl.LessonID] = ml
					mm.order = append(mm.order, dl.LessonID)
				}
				for _, dt := range dl.CompletedTopics {
					if !ml.topicSet[dt.TopicID] {
						ml.topicSet[dt.TopicID] = true
						ml.topics = append(ml.topics, dt.TopicID)
					}
				}
			}
		}

		users = append(users, MemberSummary{
			UserID:         member.UserID,
			Name:           member.Name,
			Email:          member.Email,
			HasLedger:      member.HasLedger,
			IsCompleted:    member.IsCompleted,
			CertificateURL: member.CertificateURL,
			UpdatedAt:      member.UpdatedAt,
			Progress:       summary,
		})
	}

	userCount := len(members)

	detailed := make([]DetailedModule, 0, len(mergedOrder))
	for _, moduleID := range mergedOrder {
		mm := merged[moduleID]
		dm := DetailedModule{
			ModuleID:         moduleID,
			ModuleTitle:      t.ModuleTitle(moduleID),
			CompletedLessons: make([]DetailedLesson, 0, len(mm.order)),
		}
		for _, lessonID := range mm.order {
			ml := mm.lessons[lessonID]
			dl := DetailedLesson{
				LessonID:        lessonID,
				LessonTitle:     t.LessonTitle(lessonID),
				CompletedTopics: make([]DetailedTopic, 0, len(ml.topics)),
			}
			for _, topicID := range ml.topics {
				dl.CompletedTopics = append(dl.CompletedTopics, DetailedTopic{
					TopicID:    topicID,
					TopicTitle: t.TopicTitle(topicID),
				})
			}
			dm.CompletedLessons = append(dm.CompletedLessons, dl)
		}
		detailed = append(detailed, dm)
	}

	return Rollup{
		TotalUsers: userCount,
		Users:      users,
		Batch: Summary{
			Modules: Count{
				Completed: sumModules,
				Total:     userCount * t.TotalModules,
				Percent:   Percent(sumModules, userCount*t.TotalModules),
			},
			Lessons: Count{
				Completed: sumLessons,
				Total:     userCount * t.TotalLessons,
				Percent:   Percent(sumLessons, userCount*t.TotalLessons),
			},
			Detailed: detailed,
		},
	}
}
