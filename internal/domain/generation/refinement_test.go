package generation

import "testing"

func TestDetectRefinement(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		priorTurn bool
		want      bool
	}{
		{
			name:      "no prior turn is never a refinement",
			message:   "make this shorter",
			priorTurn: false,
			want:      false,
		},
		{
			name:      "keyword with prior turn",
			message:   "Make this shorter",
			priorTurn: true,
			want:      true,
		},
		{
			name:      "rewrite keyword",
			message:   "rewrite with a stronger hook",
			priorTurn: true,
			want:      true,
		},
		{
			name:      "new topic always wins",
			message:   "new topic: AI ethics",
			priorTurn: true,
			want:      false,
		},
		{
			name:      "new topic wins over refinement keyword",
			message:   "make it more formal, but on a different topic",
			priorTurn: true,
			want:      false,
		},
		{
			name:      "new topic wins over pronoun",
			message:   "that didn't land, something else please",
			priorTurn: true,
			want:      false,
		},
		{
			name:      "short message with referential pronoun",
			message:   "polish it please.",
			priorTurn: true,
			want:      true,
		},
		{
			name:      "short message without pronoun",
			message:   "write a post about cloud security trends",
			priorTurn: true,
			want:      false,
		},
		{
			name:      "long message with pronoun is not a refinement",
			message:   "I think it would be worth writing about the state of mentorship in engineering organizations today",
			priorTurn: true,
			want:      false,
		},
		{
			name:      "start over resets",
			message:   "start over with something about hiring",
			priorTurn: true,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectRefinement(tt.message, tt.priorTurn); got != tt.want {
				t.Errorf("DetectRefinement(%q, %v) = %v, want %v", tt.message, tt.priorTurn, got, tt.want)
			}
		})
	}
}
