package models

import "time"

// Mode selects which backend endpoint a chat submit targets.
type Mode string

const (
	ModeAnswer Mode = "answer"
	ModeHint   Mode = "hint"
)

// ParseMode returns the mode for a form value. Unknown values fall back
// to answer, the toggle's default position.
func ParseMode(s string) Mode {
	if Mode(s) == ModeHint {
		return ModeHint
	}
	return ModeAnswer
}

// EvaluationRecord is one row of /export/evaluations?fmt=json.
type EvaluationRecord struct {
	CreatedAt string      `json:"created_at"`
	Question  string      `json:"question"`
	Answer    string      `json:"answer"`
	Score     interface{} `json:"score"`
	Reason    string      `json:"reason"`
}

// ChatState is what the chat page shows for one browser.
type ChatState struct {
	Question   string `json:"question"`
	Mode       Mode   `json:"mode"`
	Response   string `json:"response"`
	Loading    bool   `json:"loading"`
	Generation uint64 `json:"generation"`
}

// NoticeKind distinguishes the two blocking dialogs of the upload flow.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot blocking message shown on the next render.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// AdminState is what the admin dashboard shows for one browser.
// Records survive a failed fetch; only a successful one replaces them.
type AdminState struct {
	Records    []EvaluationRecord `json:"records"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	Loading    bool               `json:"loading"`
	Error      string             `json:"error,omitempty"`
	Generation uint64             `json:"generation"`
	Notice     *Notice            `json:"notice,omitempty"`
}

// SessionState holds both views for a single browser session.
type SessionState struct {
	Chat      ChatState  `json:"chat"`
	Admin     AdminState `json:"admin"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewSessionState returns the state a brand new visitor starts with.
func NewSessionState() *SessionState {
	return &SessionState{
		Chat:      ChatState{Mode: ModeAnswer},
		Admin:     AdminState{Records: []EvaluationRecord{}},
		UpdatedAt: time.Now(),
	}
}
