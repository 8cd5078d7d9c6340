package exam

// GoNext moves to the next question, staying on the last one.
func (s *Session) GoNext() error {
	return s.navigate("go-next", func(i int) int { return i + 1 })
}

// GoPrevious moves to the previous question, staying on the first one.
func (s *Session) GoPrevious() error {
	return s.navigate("go-previous", func(i int) int { return i - 1 })
}

// GoTo moves to question i, clamped into range.
func (s *Session) GoTo(i int) error {
	return s.navigate("go-to", func(int) int { return i })
}

// GoToID moves to the question with the given id.
func (s *Session) GoToID(id string) error {
	i, ok := s.set.Lookup(id)
	if !ok {
		return &UnknownQuestionError{QuestionID: id}
	}
	return s.GoTo(i)
}

func (s *Session) navigate(op string, next func(int) int) error {
	return s.mutate(func(*changes) error {
		if err := s.rejectSubmitted(op); err != nil {
			return err
		}
		s.currentIndex = max(0, min(next(s.currentIndex), s.set.Len()-1))
		return nil
	})
}
