package variants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFilter(t *testing.T, cfg FilterConfig, input string) (string, error) {
	t.Helper()
	var sb strings.Builder
	err := NewFilter(cfg).Run(strings.NewReader(input), &sb)
	return sb.String(), err
}

func dataLines(out string) []string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	return lines[1:]
}

func TestFilterMaxAF(t *testing.T) {
	input := "POSITION\tgnomADe_AF\tAF\n" +
		"chr1:100\t0.001\t0.002\n" + // kept
		"chr1:200\t0.5\t0.001\n" + // gnomADe too common
		"chr1:300\t\t0.05\n" + // 1KG too common
		"chr1:400\t.\t-\n" // missing values pass

	out, err := runFilter(t, FilterConfig{MaxAF: 0.01}, input)
	require.NoError(t, err)

	rows := dataLines(out)
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[0], "chr1:100"))
	assert.True(t, strings.HasPrefix(rows[1], "chr1:400"))
}

func TestFilterMultiValueAF(t *testing.T) {
	input := "POSITION\tAF\n" +
		"chr1:100\t0.001&0.002\n" +
		"chr1:200\t0.001&0.9\n"

	out, err := runFilter(t, FilterConfig{MaxAF: 0.01}, input)
	require.NoError(t, err)

	rows := dataLines(out)
	require.Len(t, rows, 1)
	assert.True(t, strings.HasPrefix(rows[0], "chr1:100"))
}

func TestFilterMinHR(t *testing.T) {
	input := "POSITION\tCOUNT_HR\n" +
		"chr1:100\t250\n" +
		"chr1:200\t12\n" +
		"chr1:300\t\n" // missing count passes

	out, err := runFilter(t, FilterConfig{MinHR: 100}, input)
	require.NoError(t, err)

	rows := dataLines(out)
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[0], "chr1:100"))
	assert.True(t, strings.HasPrefix(rows[1], "chr1:300"))
}

func TestFilterNoModifier(t *testing.T) {
	input := "POSITION\tIMPACT\n" +
		"chr1:100\tHIGH\n" +
		"chr1:200\tMODIFIER\n" +
		"chr1:300\tMODERATE\n"

	out, err := runFilter(t, FilterConfig{NoModifier: true}, input)
	require.NoError(t, err)

	rows := dataLines(out)
	require.Len(t, rows, 2)
}

func TestFilterNoModifierMissingColumn(t *testing.T) {
	input := "POSITION\tAF\nchr1:100\t0.001\n"

	_, err := runFilter(t, FilterConfig{NoModifier: true}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMPACT")
}

func TestFilterKeep(t *testing.T) {
	input := "POSITION\tCANONICAL\n" +
		"chr1:100\tYES\n" +
		"chr1:200\t\n"

	out, err := runFilter(t, FilterConfig{Keep: map[string]string{"CANONICAL": "YES"}}, input)
	require.NoError(t, err)

	rows := dataLines(out)
	require.Len(t, rows, 1)
	assert.True(t, strings.HasPrefix(rows[0], "chr1:100"))
}

func TestFilterKeepMissingColumn(t *testing.T) {
	input := "POSITION\tAF\nchr1:100\t0.001\n"

	_, err := runFilter(t, FilterConfig{Keep: map[string]string{"CANONICAL": "YES"}}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CANONICAL")
}

func TestFilterBadFieldCount(t *testing.T) {
	input := "POSITION\tAF\n" +
		"chr1:100\t0.001\textra\n"

	_, err := runFilter(t, FilterConfig{MaxAF: 0.01}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestFilterBadAF(t *testing.T) {
	input := "POSITION\tAF\n" +
		"chr1:100\tnot-a-number\n"

	_, err := runFilter(t, FilterConfig{MaxAF: 0.01}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allele frequency")
}

func TestFilterBadCountHR(t *testing.T) {
	input := "POSITION\tCOUNT_HR\n" +
		"chr1:100\tmany\n"

	_, err := runFilter(t, FilterConfig{MinHR: 100}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COUNT_HR")
}

func TestFilterEmptyInput(t *testing.T) {
	_, err := runFilter(t, FilterConfig{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header")
}

func TestFilterHeaderEchoedUnchanged(t *testing.T) {
	input := "POSITION\tAF\tNOTES\n"

	out, err := runFilter(t, FilterConfig{MaxAF: 0.01}, input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}
