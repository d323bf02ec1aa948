package domain

import "testing"

func TestTruncateGloss(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "short text unchanged", text: "a small dog", want: "a small dog"},
		{name: "exactly six words", text: "one two three four five six", want: "one two three four five six"},
		{name: "cut before conjunction", text: "a large dog and a small cat", want: "a large dog"},
		{name: "cut after comma", text: "a large hairy dog, usually brown in color", want: "a large hairy dog,"},
		{name: "conjunction before index three ignored", text: "cats and dogs living together in harmony forever", want: "cats and dogs living together in..."},
		{name: "stop word case-insensitive", text: "the thing over here Which is big", want: "the thing over here"},
		{name: "hard cut", text: "one two three four five six seven", want: "one two three four five six..."},
		{name: "hard cut ending with period", text: "one two three four five six. seven", want: "one two three four five six."},
		{name: "relative pronoun run", text: "a long rambling definition that which goes on", want: "a long rambling definition"},
		{name: "stop word at index six", text: "one two three four five six that eight", want: "one two three four five six"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateGloss(tt.text, DefaultBriefWords); got != tt.want {
				t.Errorf("TruncateGloss(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestShortGloss(t *testing.T) {
	t.Parallel()

	tests := []struct {
		gloss string
		want  string
	}{
		{"move fast by using one's feet; with one foot off the ground", "move fast by using one's feet"},
		{"a domesticated carnivorous mammal that typically has a long snout", "a domesticated carnivorous mammal..."},
		{"one two three four five six seven", "one two three four five six..."},
		{"  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		if got := ShortGloss(tt.gloss); got != tt.want {
			t.Errorf("ShortGloss(%q) = %q, want %q", tt.gloss, got, tt.want)
		}
	}
}
