package jacoco_test

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/input"
	"github.com/codeready-toolchain/toolchain-cicd/ci-report/internal/jacoco"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("valid report", func(t *testing.T) {
		// when
		table, err := jacoco.ParseFile(afero.NewOsFs(), logger, "../testdata/jacoco.xml")
		// then
		require.NoError(t, err)
		rows := table.Rows()
		require.Len(t, rows, 6)
		types := make([]string, 0, len(rows))
		for _, r := range rows {
			types = append(types, r.Type)
		}
		assert.Equal(t, jacoco.CounterTypes, types)
		// nested package and class counters are not report counters
		assert.Equal(t, jacoco.Counter{Type: "INSTRUCTION", Missed: 345, Covered: 365}, table["INSTRUCTION"])
		assert.Equal(t, 80, table["BRANCH"].Total())
		assert.InDelta(t, 42.5, table["BRANCH"].Pct(), 0.0001)
	})

	t.Run("missing file", func(t *testing.T) {
		// when
		_, err := jacoco.ParseFile(afero.NewMemMapFs(), logger, "target/site/jacoco/jacoco.xml")
		// then
		require.EqualError(t, err, "file not found: target/site/jacoco/jacoco.xml")
		assert.ErrorIs(t, err, input.ErrNotFound)
	})
}

func TestParse(t *testing.T) {

	t.Run("zero total", func(t *testing.T) {
		// given
		xml := `<report name="r">
  <counter type="INSTRUCTION" missed="10" covered="90"/>
  <counter type="BRANCH" missed="0" covered="0"/>
</report>`
		// when
		table, err := jacoco.Parse(strings.NewReader(xml))
		// then
		require.NoError(t, err)
		require.Len(t, table.Rows(), 2)
		assert.InDelta(t, 90.0, table["INSTRUCTION"].Pct(), 0.0001)
		assert.Zero(t, table["BRANCH"].Total())
		assert.Zero(t, table["BRANCH"].Pct())
	})

	t.Run("unknown types are dropped from rows", func(t *testing.T) {
		// given
		xml := `<report>
  <counter type="CLASS" missed="1" covered="3"/>
  <counter type="MUTATION" missed="4" covered="4"/>
  <counter type="LINE" missed="2" covered="8"/>
</report>`
		// when
		table, err := jacoco.Parse(strings.NewReader(xml))
		// then
		require.NoError(t, err)
		assert.Len(t, table, 3)
		assert.Equal(t, []jacoco.Counter{
			{Type: "LINE", Missed: 2, Covered: 8},
			{Type: "CLASS", Missed: 1, Covered: 3},
		}, table.Rows())
	})

	t.Run("last duplicate wins", func(t *testing.T) {
		// given
		xml := `<report>
  <counter type="LINE" missed="2" covered="8"/>
  <counter type="LINE" missed="5" covered="5"/>
</report>`
		// when
		table, err := jacoco.Parse(strings.NewReader(xml))
		// then
		require.NoError(t, err)
		assert.Equal(t, jacoco.Counter{Type: "LINE", Missed: 5, Covered: 5}, table["LINE"])
	})

	t.Run("no counters", func(t *testing.T) {
		// when
		table, err := jacoco.Parse(strings.NewReader(`<report name="empty"/>`))
		// then
		require.NoError(t, err)
		assert.Empty(t, table.Rows())
	})

	t.Run("invalid counter value", func(t *testing.T) {
		// given
		xml := `<report><counter type="LINE" missed="many" covered="8"/></report>`
		// when
		_, err := jacoco.Parse(strings.NewReader(xml))
		// then
		require.EqualError(t, err, `invalid missed value "many" for counter LINE`)
	})

	t.Run("malformed XML", func(t *testing.T) {
		// when
		_, err := jacoco.Parse(strings.NewReader(`<report><counter`))
		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error decoding XML")
	})
}
