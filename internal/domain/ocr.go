package domain

import "strings"

// Fragment is one recognized text span from the OCR collaborator.
// Confidence is in [0,1].
type Fragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// JoinFragments concatenates fragment texts with single spaces to form the
// label text the pipeline consumes.
func JoinFragments(fragments []Fragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}
