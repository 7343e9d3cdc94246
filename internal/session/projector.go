package session

import "time"

// AnswerOption is a selectable option without its correctness flag.
type AnswerOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionView is the shared question readout used by both projections.
// Correct-answer data is carried separately so each view controls exposure.
type QuestionView struct {
	Index           int            `json:"index"`
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	Type            string         `json:"type"`
	DurationSeconds int            `json:"duration_seconds"`
	BasePoints      int            `json:"base_points"`
	Options         []AnswerOption `json:"options"`
}

// PlayerStanding is one roster entry with its derived running score.
type PlayerStanding struct {
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	JoinedAt    time.Time `json:"joined_at"`
}

// AnswerOutcome summarizes a player's own submission for the current question.
type AnswerOutcome struct {
	Correct       bool `json:"correct"`
	PointsAwarded int  `json:"points_awarded"`
}

// AdminStatusView is the operator projection: the full roster with running
// scores, the submission count for the current question, and the correct
// answer ids once the question is no longer accepting answers.
type AdminStatusView struct {
	SessionID        string           `json:"session_id"`
	QuizID           string           `json:"quiz_id"`
	Status           string           `json:"status"`
	CurrentIndex     int              `json:"current_index"`
	QuestionCount    int              `json:"question_count"`
	Question         *QuestionView    `json:"question,omitempty"`
	CorrectAnswerIDs []string         `json:"correct_answer_ids,omitempty"`
	AcceptingAnswers bool             `json:"accepting_answers"`
	DeadlineAt       *time.Time       `json:"deadline_at,omitempty"`
	SubmissionCount  int              `json:"submission_count"`
	Players          []PlayerStanding `json:"players"`
	Leaderboard      []Standing       `json:"leaderboard"`
}

// PlayerStatusView is the participant projection. CorrectAnswerIDs is
// populated only once AnswerAvailable is true: a participant must never see
// correctness data while the question is still answerable.
type PlayerStatusView struct {
	SessionID        string         `json:"session_id"`
	Status           string         `json:"status"`
	CurrentIndex     int            `json:"current_index"`
	QuestionCount    int            `json:"question_count"`
	Question         *QuestionView  `json:"question,omitempty"`
	AcceptingAnswers bool           `json:"accepting_answers"`
	DeadlineAt       *time.Time     `json:"deadline_at,omitempty"`
	AnswerAvailable  bool           `json:"answer_available"`
	CorrectAnswerIDs []string       `json:"correct_answer_ids,omitempty"`
	YourAnswer       *AnswerOutcome `json:"your_answer,omitempty"`
	Score            int            `json:"score"`
	Leaderboard      []Standing     `json:"leaderboard"`
}

// buildAdminView derives the operator projection. Caller holds the session
// lock (read mode suffices); nothing here mutates session state.
func buildAdminView(s *Session, now time.Time) AdminStatusView {
	view := AdminStatusView{
		SessionID:        s.id,
		QuizID:           s.snapshot.QuizID,
		Status:           s.status,
		CurrentIndex:     s.currentIndex,
		QuestionCount:    s.snapshot.Len(),
		AcceptingAnswers: s.acceptingAnswersLocked(now),
		Players:          standingsInJoinOrder(s.roster, s.answers),
		Leaderboard:      Rank(s.roster, s.answers),
	}

	if deadline, ok := s.deadlineLocked(); ok {
		view.DeadlineAt = &deadline
	}

	if question, ok := s.currentQuestionLocked(); ok {
		qv := questionView(s.currentIndex, question)
		view.Question = &qv
		view.SubmissionCount = s.answers.CountForQuestion(s.currentIndex)
		// Correct flags are withheld while the question is live so an
		// operator screen shared with the room leaks nothing.
		if s.status != StatusQuestionActive {
			view.CorrectAnswerIDs = question.CorrectAnswerIDs()
		}
	}

	return view
}

// buildPlayerView derives the participant projection for one player.
func buildPlayerView(s *Session, playerID string, now time.Time) PlayerStatusView {
	view := PlayerStatusView{
		SessionID:        s.id,
		Status:           s.status,
		CurrentIndex:     s.currentIndex,
		QuestionCount:    s.snapshot.Len(),
		AcceptingAnswers: s.acceptingAnswersLocked(now),
		Score:            s.answers.PlayerScore(playerID),
		Leaderboard:      Rank(s.roster, s.answers),
	}

	if deadline, ok := s.deadlineLocked(); ok {
		view.DeadlineAt = &deadline
	}

	question, ok := s.currentQuestionLocked()
	if !ok {
		return view
	}

	qv := questionView(s.currentIndex, question)
	view.Question = &qv
	view.AnswerAvailable = s.status == StatusQuestionLocked || !view.AcceptingAnswers
	if view.AnswerAvailable {
		view.CorrectAnswerIDs = question.CorrectAnswerIDs()
	}
	if rec, answered := s.answers.Get(s.currentIndex, playerID); answered {
		view.YourAnswer = &AnswerOutcome{
			Correct:       rec.Correct,
			PointsAwarded: rec.PointsAwarded,
		}
	}

	return view
}

func (s *Session) currentQuestionLocked() (SnapshotQuestion, bool) {
	if s.currentIndex < 0 || s.currentIndex >= s.snapshot.Len() {
		return SnapshotQuestion{}, false
	}
	return s.snapshot.Questions[s.currentIndex], true
}

func questionView(index int, q SnapshotQuestion) QuestionView {
	options := make([]AnswerOption, len(q.Answers))
	for i, a := range q.Answers {
		options[i] = AnswerOption{ID: a.ID, Text: a.Text}
	}
	return QuestionView{
		Index:           index,
		ID:              q.ID,
		Text:            q.Text,
		Type:            q.Type,
		DurationSeconds: int(q.Duration / time.Second),
		BasePoints:      q.BasePoints,
		Options:         options,
	}
}

func standingsInJoinOrder(roster *Roster, answers *Collector) []PlayerStanding {
	players := roster.Players()
	standings := make([]PlayerStanding, len(players))
	for i, p := range players {
		standings[i] = PlayerStanding{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Score:       answers.PlayerScore(p.ID),
			JoinedAt:    p.JoinedAt,
		}
	}
	return standings
}
