package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{" 0 ", 0, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"2.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := ParseCount(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				assert.Equal(t, InvalidNumber, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestParseSelection(t *testing.T) {
	n, err := ParseSelection("2", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, in := range []string{"0", "4", "x", ""} {
		_, err := ParseSelection(in, 3)
		assert.ErrorIs(t, err, ErrValidation, in)
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Concurrent, p)

	p, err = ParsePolicy("Sequential")
	require.NoError(t, err)
	assert.Equal(t, Sequential, p)

	_, err = ParsePolicy("parallel")
	assert.Error(t, err)
}

func TestResultString(t *testing.T) {
	ok := Result{Kind: KindRole, Action: ActionDelete, Name: "Admin", OK: true}
	assert.Equal(t, "Deleted role: Admin", ok.String())

	failed := Result{Kind: KindChannel, Action: ActionCreate, Name: "general (1/3)", Err: "rate limited"}
	assert.Equal(t, "Failed to create channel general (1/3): rate limited", failed.String())
}
