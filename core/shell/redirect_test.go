package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRedirect(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
		argv   []string
		target string
		err    error
	}{
		{"empty", nil, nil, "", nil},
		{"no redirect", []string{"ls", "-l"}, []string{"ls", "-l"}, "", nil},
		{"simple", []string{"ls", ">", "out"}, []string{"ls"}, "out", nil},
		{"arguments kept", []string{"ls", "-l", "/tmp", ">", "out"}, []string{"ls", "-l", "/tmp"}, "out", nil},
		{"leading redirect", []string{">", "out"}, nil, "", ErrSyntax},
		{"missing target", []string{"ls", ">"}, nil, "", ErrSyntax},
		{"two targets", []string{"ls", ">", "a", "b"}, nil, "", ErrSyntax},
		{"double operator", []string{"ls", ">", ">", "out"}, nil, "", ErrSyntax},
		{"second redirect", []string{"ls", ">", "a", ">", "b"}, nil, "", ErrSyntax},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			argv, target, err := splitRedirect(tc.tokens)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.argv, argv)
			assert.Equal(t, tc.target, target)
		})
	}
}
