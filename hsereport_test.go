package hsereport

import (
	"testing"

	"github.com/tsawler/hsereport/internal/doctest"
)

func TestFromBytes_Extract(t *testing.T) {
	data := doctest.DOCX(t, [][]string{
		{"Field", "Mereenie", "Palm Valley", "BECGS/Dingo"},
		{"HSE", "Leak reported", "Nil", "Nil"},
		{"Production", "10", "20", "30"},
	})

	rec, err := FromBytes(data, "2024-05-01.docx").Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if rec.Date != "2024-05-01" {
		t.Errorf("Date = %q, want 2024-05-01", rec.Date)
	}
	if got := rec.Value("Mereenie"); got != "Leak reported" {
		t.Errorf("Mereenie = %q, want Leak reported", got)
	}
	if got := rec.Value("Palm Valley"); got != "Nil" {
		t.Errorf("Palm Valley = %q, want Nil", got)
	}
}

func TestOpen_File(t *testing.T) {
	path := doctest.WriteDOCX(t, t.TempDir(), "2024-06-10.docx", [][]string{
		{"Field", "Mereenie"},
		{"HSE", "All clear"},
	})

	rec, err := Open(path).Fields("Mereenie").Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got := rec.Value("Mereenie"); got != "All clear" {
		t.Errorf("Mereenie = %q, want All clear", got)
	}
}

func TestExtractor_FieldsDoesNotMutateReceiver(t *testing.T) {
	data := doctest.DOCX(t, [][]string{
		{"Field", "Mereenie", "Palm Valley"},
		{"HSE", "A", "B"},
	})

	base := FromBytes(data, "r.docx")
	narrow := base.Fields("Mereenie")

	wide, err := base.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if _, ok := wide.Values["Palm Valley_HSE"]; !ok {
		t.Error("base extractor lost its default fields after Fields() on a copy")
	}

	rec, err := narrow.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if _, ok := rec.Values["Palm Valley_HSE"]; ok {
		t.Error("narrowed extractor still tracks Palm Valley")
	}
}

func TestExtractor_Markers(t *testing.T) {
	data := doctest.DOCX(t, [][]string{
		{"Field", "Mereenie"},
		{"Safety", "Custom marker comment"},
		{"Output", "10"},
	})

	rec, err := FromBytes(data, "r.docx").
		Fields("Mereenie").
		Markers("Safety", "Output").
		Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got := rec.Value("Mereenie"); got != "Custom marker comment" {
		t.Errorf("Mereenie = %q, want Custom marker comment", got)
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must did not panic on error")
		}
	}()
	Must(Open("no-such-file.docx").Extract())
}

func TestDefaultFields_Copy(t *testing.T) {
	fields := DefaultFields()
	fields[0] = "mutated"
	if got := DefaultFields()[0]; got != "Mereenie" {
		t.Errorf("DefaultFields leaked internal state: %q", got)
	}
}
