package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RoboAdvisor/internal/model"
)

func TestCollectSymbols(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{name: "single symbol", input: "msft\n\n", want: []string{"MSFT"}},
		{name: "several symbols keep order", input: "aapl\n goog \nmsft\n\n", want: []string{"AAPL", "GOOG", "MSFT"}},
		{name: "eof without trailing newline", input: "nflx", want: []string{"NFLX"}},
		{name: "duplicates ignored", input: "MSFT\nmsft\n\n", want: []string{"MSFT"}},
		{name: "invalid entries skipped", input: "12345\nTOOLONG\nAB-C\nibm\n\n", want: []string{"IBM"}},
		{name: "empty input", input: "", wantErr: model.ErrNoSymbols},
		{name: "only blank line", input: "\n", wantErr: model.ErrNoSymbols},
		{name: "only invalid entries", input: "123\n\n", wantErr: model.ErrNoSymbols},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := CollectSymbols(strings.NewReader(tc.input), &out)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "You entered: "+strings.Join(tc.want, ", "))
		})
	}
}

func TestCollectSymbolsFeedback(t *testing.T) {
	var out bytes.Buffer
	_, err := CollectSymbols(strings.NewReader("9x\nmsft\nMSFT\n\n"), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"9X" is not a valid symbol`)
	assert.Contains(t, out.String(), "MSFT is already in the list.")
	assert.Equal(t, 4, strings.Count(out.String(), "Please enter a stock symbol"))
}

func TestValidSymbol(t *testing.T) {
	assert.True(t, ValidSymbol("A"))
	assert.True(t, ValidSymbol("GOOGL"))
	assert.False(t, ValidSymbol(""))
	assert.False(t, ValidSymbol("msft"))
	assert.False(t, ValidSymbol("ABCDEF"))
	assert.False(t, ValidSymbol("BRK.B"))
}
