package progression

// Quiz is a single gating question attached to a lesson.
type Quiz struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
}

// QuizResult is returned from every submission. The correct index is always
// disclosed, also on a wrong answer.
type QuizResult struct {
	Correct       bool `json:"correct"`
	SelectedIndex int  `json:"selected_index"`
	CorrectIndex  int  `json:"correct_index"`
}

// QuizRunner presents one quiz and accepts exactly one answer. There is no
// retry within an instance; after a wrong answer the caller re-presents the
// question through a fresh runner.
type QuizRunner struct {
	quiz     Quiz
	answered bool
}

func NewQuizRunner(q Quiz) *QuizRunner {
	return &QuizRunner{quiz: q}
}

// Answered reports whether the runner has consumed its single submission.
func (r *QuizRunner) Answered() bool {
	return r.answered
}

// Submit scores the selected option. A second call on the same runner fails
// with ErrInvalidState, which also absorbs double-clicks on a submit control.
// A selection outside the option range fails with ErrInvalidInput.
func (r *QuizRunner) Submit(selected int) (QuizResult, error) {
	if r.answered {
		return QuizResult{}, ErrInvalidState
	}
	if selected < 0 || selected >= len(r.quiz.Options) {
		return QuizResult{}, ErrInvalidInput
	}
	r.answered = true
	return QuizResult{
		Correct:       selected == r.quiz.CorrectIndex,
		SelectedIndex: selected,
		CorrectIndex:  r.quiz.CorrectIndex,
	}, nil
}
