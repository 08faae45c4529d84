package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapseWhitespace(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"already clean", "already clean"},
		{"  leading and trailing  ", "leading and trailing"},
		{"inner\t\truns\n\n collapse", "inner runs collapse"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CollapseWhitespace(test.input))
	}
}
