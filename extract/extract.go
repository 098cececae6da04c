package extract

import "github.com/tsawler/hsereport/model"

// Document extracts one Record from a document's tables. The accumulator is
// shared across all tables; header resolution and scan state start fresh
// for each table. Either a complete Record is returned or an error; a
// failed document never yields a partial record.
func Document(doc *model.Document, fs FieldSet) (Record, error) {
	if err := fs.Validate(); err != nil {
		return Record{}, err
	}

	acc := NewAccumulator(fs)
	machine := newSectionMachine(fs, acc)

	scanner := NewTableScanner(doc)
	for scanner.Next() {
		hi := ResolveHeader(fs.Fields, scanner.Header())
		machine.scanTable(hi, scanner.Rows())
	}
	if err := scanner.Err(); err != nil {
		return Record{}, err
	}

	return assemble(doc.Name, fs, acc), nil
}
