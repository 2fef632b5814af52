package lockfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "# comment", want: ""},
		{in: "foo = 1 # trailing", want: "foo = 1"},
		{in: "foo = 1\t# tab", want: "foo = 1"},
		{in: "foo = git+https://h/r#main", want: "foo = git+https://h/r#main"},
		{in: "foo = git+https://h/r#main # c", want: "foo = git+https://h/r#main"},
		{in: "   bar = 2   ", want: "bar = 2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, stripComment(tt.in))
		})
	}
}
