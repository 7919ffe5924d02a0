package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		want     []int
		wantErr  bool
		errToken string
	}{
		{
			name: "Discrete ports",
			spec: "22,80,443",
			want: []int{22, 80, 443},
		},
		{
			name: "Range",
			spec: "8000-8002",
			want: []int{8000, 8001, 8002},
		},
		{
			name: "Range and discrete overlap deduplicates",
			spec: "8000-8002,8001",
			want: []int{8000, 8001, 8002},
		},
		{
			name: "Unordered input comes back sorted",
			spec: "443,22,80",
			want: []int{22, 80, 443},
		},
		{
			name: "Whitespace and empty tokens skipped",
			spec: " 22 , ,80,",
			want: []int{22, 80},
		},
		{
			name: "Empty spec is an empty set, not an error",
			spec: "",
			want: []int{},
		},
		{
			name: "Only commas and whitespace",
			spec: " , ,  ",
			want: []int{},
		},
		{
			name:     "Range below 1",
			spec:     "0-10",
			wantErr:  true,
			errToken: "0-10",
		},
		{
			name:     "Port above 65535",
			spec:     "70000",
			wantErr:  true,
			errToken: "70000",
		},
		{
			name:     "Non-numeric port",
			spec:     "abc",
			wantErr:  true,
			errToken: "abc",
		},
		{
			name:     "Inverted range",
			spec:     "100-10",
			wantErr:  true,
			errToken: "100-10",
		},
		{
			name:     "Range with non-numeric bound",
			spec:     "80-abc",
			wantErr:  true,
			errToken: "80-abc",
		},
		{
			name:     "Bad token after valid ones",
			spec:     "22,80,bogus",
			wantErr:  true,
			errToken: "bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.spec)

			if tt.wantErr {
				require.Error(t, err)
				var specErr *InvalidSpecError
				require.ErrorAs(t, err, &specErr)
				assert.Equal(t, tt.errToken, specErr.Token)
				assert.Contains(t, err.Error(), tt.errToken)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStrictlyAscending(t *testing.T) {
	specs := []string{
		"1-1024",
		"80,22,443,22,80",
		"1000-1010,1005-1020,999",
	}

	for _, spec := range specs {
		got, err := Parse(spec)
		require.NoError(t, err, "spec %q", spec)

		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i], got[i-1], "spec %q not strictly ascending at index %d", spec, i)
		}
	}
}

func TestParseFullRangeBounds(t *testing.T) {
	got, err := Parse("1-65535")
	require.NoError(t, err)
	require.Len(t, got, 65535)
	assert.Equal(t, 1, got[0])
	assert.Equal(t, 65535, got[len(got)-1])
}

func TestInvalidSpecErrorUnwrap(t *testing.T) {
	_, err := Parse("22,nope")

	var specErr *InvalidSpecError
	require.True(t, errors.As(err, &specErr))
	assert.Equal(t, "nope", specErr.Token)
	assert.NotEmpty(t, specErr.Reason)
}
