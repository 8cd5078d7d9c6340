package exam

// SetAnswer records value for questionID, replacing any earlier answer.
func (s *Session) SetAnswer(questionID string, value Answer) error {
	return s.mutate(func(c *changes) error {
		if err := s.rejectSubmitted("set-answer"); err != nil {
			return err
		}
		i, ok := s.set.Lookup(questionID)
		if !ok {
			return &UnknownQuestionError{QuestionID: questionID}
		}
		if err := s.set.questions[i].accepts(value); err != nil {
			return err
		}
		s.answers[questionID] = value
		s.recompute(c)
		s.log.Debug().Str("question_id", questionID).Stringer("answer", value).Msg("Answer recorded")
		return nil
	})
}

// ToggleMark flags questionID for review, or clears the flag if set.
// It returns whether the question is marked afterwards.
func (s *Session) ToggleMark(questionID string) (bool, error) {
	var marked bool
	err := s.mutate(func(c *changes) error {
		if err := s.rejectSubmitted("toggle-mark"); err != nil {
			return err
		}
		if _, ok := s.set.Lookup(questionID); !ok {
			return &UnknownQuestionError{QuestionID: questionID}
		}
		if _, ok := s.marked[questionID]; ok {
			delete(s.marked, questionID)
		} else {
			s.marked[questionID] = struct{}{}
			marked = true
		}
		// Marks do not feed the analyzer; this keeps the snapshot current
		// for observers without changing its value.
		s.recompute(c)
		return nil
	})
	return marked, err
}
