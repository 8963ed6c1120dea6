package constants

import "time"

// Mood is the optional self-reported state attached to an entry.
type Mood string

const (
	MoodNeutral Mood = "neutral"
	MoodFlow    Mood = "flow"
	MoodStuck   Mood = "stuck"
	MoodChill   Mood = "chill"
)

const (
	// Validation limits, measured in characters
	WorkMin    = 10
	WorkMax    = 5000
	LearnMax   = 1000
	LeakMax    = 500
	ThoughtMax = 2000
	ContextMax = 2000

	EffortMin = 1
	EffortMax = 5

	// Editability window bounds, in days between today and the target date.
	// The lower bound is inclusive, the upper bound exclusive.
	EditWindowLower = -0.5
	EditWindowUpper = 1.5

	// Skill engine
	XPPerTag          = 10
	XPPerEffortPoint  = 5
	LegendaryTagXP    = 5000
	LevelXP           = 100
	SkillDecayDays    = 14
	MasterLevel       = 10
	DefaultSkillLimit = 6

	// Grimoire
	TomeLineThreshold = 15 // snippets with more lines than this are tomes
	LanguageTagLimit  = 15 // a language tag is shorter than this
	DefaultLanguage   = "txt"

	// Sidebar
	SparklineDays = 7
	TopLeakCount  = 3

	// Enrichment
	AIMinTextLen     = 10
	AIMaxTags        = 3
	DefaultAITimeout = 20 * time.Second

	// Server
	DefaultServerAddr = "127.0.0.1:8417"

	// Logging
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
	LogFileName          = "ledger.log"
)

// Moods lists the accepted mood values in display order.
var Moods = []Mood{MoodNeutral, MoodFlow, MoodStuck, MoodChill}

// QuickTags are the one-tap hashtags offered when writing the work log.
var QuickTags = []string{"#Coding", "#BugFix", "#Meeting", "#Learning", "#Planning", "#Review"}

// TimeLeaks are the one-tap time-leak lines offered when writing the leak log.
var TimeLeaks = []string{"📱 Social Media", "🎮 Games", "🛌 Napping", "💭 Overthinking", "🔁 Context Switch", "🐌 Procrastination"}
