package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/hsereport/model"
)

func TestTableScanner_WalksTablesInOrder(t *testing.T) {
	d := doc("r.docx",
		[][]string{{"first"}},
		[][]string{{"second"}},
	)

	s := NewTableScanner(d)
	var seen []string
	for s.Next() {
		seen = append(seen, s.Header()[0])
	}

	require.NoError(t, s.Err())
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestTableScanner_Empty(t *testing.T) {
	s := NewTableScanner(doc("r.docx"))
	assert.False(t, s.Next())
	assert.NoError(t, s.Err())
}

func TestTableScanner_ZeroRowTable(t *testing.T) {
	d := doc("r.docx",
		[][]string{{"ok"}},
		nil,
		[][]string{{"never reached"}},
	)

	s := NewTableScanner(d)
	assert.True(t, s.Next())
	assert.False(t, s.Next())

	var se *StructureError
	require.ErrorAs(t, s.Err(), &se)
	assert.Equal(t, 1, se.Table)

	// The scanner stays stopped once it has failed.
	assert.False(t, s.Next())
}

func TestTableScanner_ForwardOnly(t *testing.T) {
	d := doc("r.docx", [][]string{{"only"}})

	s := NewTableScanner(d)
	assert.True(t, s.Next())
	assert.False(t, s.Next())
	assert.False(t, s.Next())
	assert.NoError(t, s.Err())
}

func TestStructureError_Message(t *testing.T) {
	err := &StructureError{Table: 3}
	assert.Equal(t, "table 3 has no rows", err.Error())
}

func TestTableScanner_RowsMatchCurrentTable(t *testing.T) {
	d := model.NewDocument("r.docx")
	d.AddTable(model.NewTable([][]string{{"h1"}, {"a"}}))
	d.AddTable(model.NewTable([][]string{{"h2"}, {"b"}, {"c"}}))

	s := NewTableScanner(d)
	require.True(t, s.Next())
	assert.Len(t, s.Rows(), 2)
	require.True(t, s.Next())
	assert.Len(t, s.Rows(), 3)
}
