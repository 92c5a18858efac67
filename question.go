package draftclaim

import "strings"

// Question is one verification item derived from a claims comment.
type Question struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Anchor string `json:"anchor,omitempty"`
}

// QuestionsFromComments converts document comments into an ordered
// question list. Each comment with non-blank text becomes exactly one
// question; indices are assigned sequentially from zero so they stay
// dense even when blank comments are skipped.
func QuestionsFromComments(comments []Comment) []Question {
	if len(comments) == 0 {
		return nil
	}
	questions := make([]Question, 0, len(comments))
	for _, c := range comments {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		questions = append(questions, Question{
			Index:  len(questions),
			Text:   text,
			Anchor: c.Anchor,
		})
	}
	return questions
}
