package services

import "time"

// Soldier is a registered account. PII is limited to the login email.
type Soldier struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Callsign    string    `json:"callsign"`
	DisplayName string    `json:"display_name,omitempty"`
	PassHash    []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Assessments ---

type ScoringKind string

const (
	ScoringDimensional ScoringKind = "dimensional"
	ScoringTypological ScoringKind = "type"
	ScoringBand        ScoringKind = "band"
)

type AssessmentOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ScoreKey string `json:"score_key,omitempty"`
	Value    int    `json:"value,omitempty"`
}

type AssessmentQuestion struct {
	ID      string             `json:"id"`
	Prompt  string             `json:"prompt"`
	Options []AssessmentOption `json:"options"`
}

// DimensionFraming maps a primary dimension to its outcome. When LowID is
// empty the high framing applies regardless of the accumulated total.
type DimensionFraming struct {
	HighID    string
	HighLabel string
	LowID     string
	LowLabel  string
}

// AssessmentDefinition is immutable static content; definitions are never
// created or destroyed at runtime.
type AssessmentDefinition struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Scoring     ScoringKind          `json:"scoring"`
	Questions   []AssessmentQuestion `json:"questions"`
	Framings    map[string]DimensionFraming
	TypeLabels  map[string]string
	RewardXP    int `json:"reward_xp,omitempty"`
}

type AssessmentOutcome struct {
	OutcomeID  string         `json:"outcome_id"`
	Label      string         `json:"label"`
	Scores     map[string]int `json:"scores,omitempty"`
	Percentage float64        `json:"percentage,omitempty"`
}

// AssessmentResult records one completed run. Immutable once stored.
type AssessmentResult struct {
	ID            string            `json:"id"`
	SoldierID     string            `json:"soldier_id"`
	AssessmentID  string            `json:"assessment_id"`
	Outcome       AssessmentOutcome `json:"outcome"`
	Answers       map[string]string `json:"answers"`
	CompletedAt   time.Time         `json:"completed_at"`
	RewardGranted bool              `json:"reward_granted"`
}

// --- IZOF zone checks ---

type ZoneRecommendation struct {
	Action   string `json:"action"`
	Guidance string `json:"guidance"`
}

type IZOFRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ZoneCheckEntry is one daily stress check-in. It is mutated exactly once,
// when the after-task reflection is attached (PerformanceOutcome 1..5;
// zero means not yet reflected).
type ZoneCheckEntry struct {
	ID                 string             `json:"id"`
	SoldierID          string             `json:"soldier_id"`
	Date               string             `json:"date"` // YYYY-MM-DD
	SubmittedAt        time.Time          `json:"submitted_at"`
	StressRating       float64            `json:"stress_rating"`
	Emotions           []string           `json:"emotions"`
	UpcomingTask       string             `json:"upcoming_task"`
	Recommendation     ZoneRecommendation `json:"recommendation"`
	PerformanceOutcome int                `json:"performance_outcome,omitempty"`
	Reflection         string             `json:"reflection,omitempty"`
}

// --- Sleep & caffeine ---

type SleepLog struct {
	ID            string    `json:"id"`
	SoldierID     string    `json:"soldier_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	Quality       int       `json:"quality"` // 1..10
	PainLevel     int       `json:"pain_level,omitempty"`
	StressFlags   []string  `json:"stress_flags,omitempty"`
}

type CaffeineLog struct {
	ID         string    `json:"id"`
	SoldierID  string    `json:"soldier_id"`
	ConsumedAt time.Time `json:"consumed_at"`
	Source     string    `json:"source"`
	AmountMg   int       `json:"amount_mg"`
}

type PerformanceImpact struct {
	ReactionTime        int `json:"reaction_time"`
	InjuryRisk          int `json:"injury_risk"`
	EmotionalVolatility int `json:"emotional_volatility"`
	JudgmentErrors      int `json:"judgment_errors"`
}

type CaffeineClearance struct {
	ClearedAt time.Time     `json:"cleared_at"`
	HalfLife  time.Duration `json:"half_life"`
}

// --- Progression ledger ---

type Rank struct {
	Tier  int    `json:"tier"`
	Title string `json:"title"`
	MinXP int    `json:"min_xp"`
}

// MissionResult is one reward event. Non-mission rewards carry a synthetic
// mission id ("reward:<source>"). Immutable once appended.
type MissionResult struct {
	ID          string            `json:"id"`
	MissionID   string            `json:"mission_id"`
	SoldierID   string            `json:"soldier_id"`
	Passed      bool              `json:"passed"`
	Score       int               `json:"score"`
	MaxScore    int               `json:"max_score"`
	XPEarned    int               `json:"xp_earned"`
	SideQuests  []string          `json:"side_quests,omitempty"`
	StepChoices map[string]string `json:"step_choices,omitempty"`
	CompletedAt time.Time         `json:"completed_at"`
}

// Progression is the single mutable aggregate per soldier. XP never
// decreases; Unlockables and GrantedRewards only grow; History is
// append-only.
type Progression struct {
	SoldierID      string          `json:"soldier_id"`
	XP             int             `json:"xp"`
	Rank           Rank            `json:"rank"`
	Unlockables    []string        `json:"unlockables,omitempty"`
	GrantedRewards []string        `json:"granted_rewards,omitempty"`
	History        []MissionResult `json:"history,omitempty"`
}

// ProgressionView is the read-only snapshot unlock rules evaluate against.
type ProgressionView struct {
	Tier               int
	StreakDays         int
	CompletedMissions  map[string]bool
	AssessmentOutcomes map[string][]string // assessment id -> outcome ids
}

type LockState struct {
	Locked bool   `json:"locked"`
	Reason string `json:"reason,omitempty"`
}

// --- Missions (static catalog) ---

type Mission struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Briefing   string       `json:"briefing"`
	XP         int          `json:"xp"`
	MaxScore   int          `json:"max_score"`
	SideQuests []string     `json:"side_quests,omitempty"`
	Unlocks    []UnlockRule `json:"-"`
}

// --- Journal, squads, reports ---

type JournalEntry struct {
	ID        string    `json:"id"`
	SoldierID string    `json:"soldier_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Mood      int       `json:"mood,omitempty"` // 1..5
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Squad struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Motto     string    `json:"motto,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type SquadMember struct {
	SquadID   string    `json:"squad_id"`
	SoldierID string    `json:"soldier_id"`
	Callsign  string    `json:"callsign"`
	JoinedAt  time.Time `json:"joined_at"`
}

type SquadStanding struct {
	SquadID string `json:"squad_id"`
	Name    string `json:"name"`
	Members int    `json:"members"`
	TotalXP int    `json:"total_xp"`
}

type Report struct {
	ID        string    `json:"id"`
	SoldierID string    `json:"soldier_id"`
	MissionID string    `json:"mission_id,omitempty"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Rating    int       `json:"rating,omitempty"` // 1..5
	CreatedAt time.Time `json:"created_at"`
}

// --- Static library content ---

type Book struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Summary string `json:"summary"`
	XP      int    `json:"xp"`
}

type Quote struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution"`
}
