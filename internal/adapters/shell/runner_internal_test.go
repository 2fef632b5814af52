package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineWriter(t *testing.T) {
	tests := []struct {
		name   string
		writes []string
		want   []string
	}{
		{name: "single line", writes: []string{"a\n"}, want: []string{"a"}},
		{name: "split write", writes: []string{"fo", "o\nba", "r\n"}, want: []string{"foo", "bar"}},
		{name: "no trailing newline", writes: []string{"a\nb"}, want: []string{"a", "b"}},
		{name: "carriage return", writes: []string{"a\r\n"}, want: []string{"a"}},
		{name: "blank line kept", writes: []string{"a\n\nb\n"}, want: []string{"a", "", "b"}},
		{name: "nothing", writes: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &lineWriter{}
			for _, s := range tt.writes {
				n, err := w.Write([]byte(s))
				assert.NoError(t, err)
				assert.Equal(t, len(s), n)
			}
			assert.NoError(t, w.Close())
			assert.Equal(t, tt.want, w.lines)
		})
	}
}
