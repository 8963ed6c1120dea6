package insights

import (
	"strings"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
)

// Badge is an unlocked achievement
type Badge struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Badges evaluates the achievements earned by entries. Stack badges look
// only at the names in skills, which callers pass as the top-N list.
func Badges(entries []models.Entry, skills []Skill) []Badge {
	var list []Badge

	tags := make(map[string]bool, len(skills))
	strong := 0
	for _, s := range skills {
		tags[s.Name] = true
		if s.Level >= 3 {
			strong++
		}
	}

	if len(entries) >= 1 {
		list = append(list, Badge{Name: "Hello World", Icon: "🌱", Description: "First Entry"})
	}
	if len(entries) >= 7 {
		list = append(list, Badge{Name: "Week Warrior", Icon: "🔥", Description: "7 Entries"})
	}

	if (tags["REACT"] || tags["NEXTJS"]) && tags["NODE"] && (tags["MONGO"] || tags["SQL"]) {
		list = append(list, Badge{Name: "Full Stack", Icon: "🏗️", Description: "React + Node + DB"})
	}
	if tags["PYTHON"] && (tags["PANDAS"] || tags["NUMPY"] || tags["AI"]) {
		list = append(list, Badge{Name: "Data Alchemist", Icon: "🧪", Description: "Python + Data Libs"})
	}
	if tags["OPERATING-SYSTEMS"] || tags["OPERATING"] || tags["LINUX"] {
		list = append(list, Badge{Name: "Sys Admin", Icon: "💻", Description: "OS Mastery"})
	}

	for _, e := range entries {
		if e.EffortRating == constants.EffortMax && strings.Contains(strings.ToLower(e.WorkLog), "#bugfix") {
			list = append(list, Badge{Name: "Firefighter", Icon: "🧯", Description: "Max Effort Bug Fix"})
			break
		}
	}

	if strong >= 3 {
		list = append(list, Badge{Name: "Polyglot", Icon: "🧠", Description: "3+ Skills > Lvl 3"})
	}

	return list
}
