package hsereport

import "github.com/tsawler/hsereport/extract"

// ExtractOptions holds configuration for one extraction.
type ExtractOptions struct {
	fieldSet extract.FieldSet
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		fieldSet: extract.DefaultFieldSet(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy the tracked field list
	if o.fieldSet.Fields != nil {
		newOpts.fieldSet.Fields = make([]string, len(o.fieldSet.Fields))
		copy(newOpts.fieldSet.Fields, o.fieldSet.Fields)
	}

	return newOpts
}
