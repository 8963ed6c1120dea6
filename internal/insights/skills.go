// Package insights derives the read-only views shown around the entry form:
// skill XP, badges, time-leak ranking, the effort sparkline, code snippets,
// search hits and calendar heat levels. Everything here is a pure function
// of the stored entries and a reference date.
package insights

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/utils"
)

// SkillStatus is the display state of a skill
type SkillStatus string

const (
	SkillActive   SkillStatus = "active"
	SkillDecaying SkillStatus = "decaying"
	SkillMaster   SkillStatus = "master"
)

// Skill is the accumulated XP for one hashtag
type Skill struct {
	Name      string      `json:"name"`
	XP        int         `json:"xp"`
	Level     int         `json:"level"`
	Progress  int         `json:"progress"` // XP into the current level, 0-99
	LastUsed  string      `json:"lastUsed"`
	DaysSince int         `json:"daysSince"`
	Status    SkillStatus `json:"status"`
}

var tagPattern = regexp.MustCompile(`#[a-z0-9_\-]+`)

// ExtractTags returns the distinct hashtags in text, upper-cased and without
// the leading '#', in order of first appearance.
func ExtractTags(text string) []string {
	matches := tagPattern.FindAllString(strings.ToLower(text), -1)
	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToUpper(strings.TrimPrefix(m, "#"))
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

func isLegendary(tag string) bool {
	return tag == "PROJECT_LAUNCH" || tag == "PROJECT-LAUNCH"
}

// TagXP is the XP one use of tag earns in an entry with the given effort.
func TagXP(tag string, effort int) int {
	if isLegendary(tag) {
		return constants.LegendaryTagXP
	}
	if effort == 0 {
		effort = 1
	}
	return constants.XPPerTag + effort*constants.XPPerEffortPoint
}

// Skills accumulates tag XP across entries and returns the top limit skills
// by XP. limit <= 0 returns all of them.
func Skills(entries []models.Entry, now time.Time, limit int) []Skill {
	type acc struct {
		xp       int
		lastUsed string
	}
	stats := make(map[string]*acc)

	for _, e := range entries {
		for _, tag := range ExtractTags(e.WorkLog + " " + e.LearningLog) {
			a, ok := stats[tag]
			if !ok {
				a = &acc{lastUsed: e.Date}
				stats[tag] = a
			}
			a.xp += TagXP(tag, e.EffortRating)
			if e.Date > a.lastUsed {
				a.lastUsed = e.Date
			}
		}
	}

	skills := make([]Skill, 0, len(stats))
	for name, a := range stats {
		level := a.xp/constants.LevelXP + 1
		days := daysSince(a.lastUsed, now)

		status := SkillActive
		switch {
		case days > constants.SkillDecayDays:
			status = SkillDecaying
		case level > constants.MasterLevel:
			status = SkillMaster
		}

		skills = append(skills, Skill{
			Name:      name,
			XP:        a.xp,
			Level:     level,
			Progress:  a.xp % constants.LevelXP,
			LastUsed:  a.lastUsed,
			DaysSince: days,
			Status:    status,
		})
	}

	sort.Slice(skills, func(i, j int) bool {
		if skills[i].XP != skills[j].XP {
			return skills[i].XP > skills[j].XP
		}
		return skills[i].Name < skills[j].Name
	})

	if limit > 0 && len(skills) > limit {
		skills = skills[:limit]
	}
	return skills
}

// daysSince is the whole number of days, rounded up, between midnight of
// date and now.
func daysSince(date string, now time.Time) int {
	elapsed, err := utils.ElapsedDays(date, now)
	if err != nil {
		return 0
	}
	return int(math.Ceil(math.Abs(elapsed)))
}
