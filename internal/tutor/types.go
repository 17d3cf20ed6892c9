package tutor

// Purpose labels recorded with each tutor request.
const (
	PurposeWisdom     = "daily-wisdom"
	PurposeStudyPlan  = "study-plan"
	PurposeSummary    = "topic-summary"
	PurposeDiagnostic = "diagnostic"
	PurposeBrief      = "chapter-brief"
	PurposeChat       = "tutor-chat"
)

// FallbackWisdom is shown when the daily wisdom cannot be generated.
const FallbackWisdom = "Consistency is the bedrock of A* success."

// DiagnosticWindow is how many recent mistakes feed a diagnostic report.
const DiagnosticWindow = 10

// ChapterBrief is a structured revision brief for one chapter.
type ChapterBrief struct {
	Synopsis        string   `json:"synopsis"`
	KnowledgePoints []string `json:"knowledge_points"`
	ExaminerTips    []string `json:"examiner_tips"`
	FormulaVault    []string `json:"formula_vault"`
}

// Role identifies the speaker of a chat turn.
type Role string

const (
	RoleLearner Role = "learner"
	RoleTutor   Role = "tutor"
)

// Turn is one message in a tutor conversation.
type Turn struct {
	Role Role
	Text string
}
