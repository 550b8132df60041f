package csvutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadCourseList(t *testing.T) {
	input := "matriculation_number,name,ca_mark\n" +
		"UBa21E0001,Ayuk Etta,70\n" +
		"UBa21E0002,Bih Claire,bad\n" +
		"UBa21E0003,Che Daniel,\n"

	rows, err := ReadCourseList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCourseList: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].CAMark == nil || *rows[0].CAMark != 70.0 {
		t.Errorf("row 0: expected ca_mark 70.0, got %v", rows[0].CAMark)
	}
	if rows[1].CAMark != nil {
		t.Errorf("row 1: unparsable ca_mark should be nil, got %v", *rows[1].CAMark)
	}
	if rows[2].CAMark != nil {
		t.Errorf("row 2: empty ca_mark should be nil, got %v", *rows[2].CAMark)
	}
}

func TestReadCourseListColumnOrderAndExtras(t *testing.T) {
	input := "name,ca_mark,matriculation_number,remark\n" +
		"Ayuk Etta,65.5,UBa21E0001,repeat\n"

	rows, err := ReadCourseList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCourseList: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].MatriculationNumber != "UBa21E0001" {
		t.Errorf("wrong matriculation number: %s", rows[0].MatriculationNumber)
	}
	if rows[0].CAMark == nil || *rows[0].CAMark != 65.5 {
		t.Errorf("expected ca_mark 65.5, got %v", rows[0].CAMark)
	}
}

func TestReadCourseListMissingColumn(t *testing.T) {
	input := "matriculation_number,name\nUBa21E0001,Ayuk Etta\n"

	_, err := ReadCourseList(strings.NewReader(input))
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("expected ErrMissingColumns, got %v", err)
	}
}

func TestReadCourseListEmptyInput(t *testing.T) {
	_, err := ReadCourseList(strings.NewReader(""))
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("expected ErrMissingColumns for empty input, got %v", err)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		[]string{"matriculation_number", "name"},
		[][]string{{"UBa21E0001", "Ayuk Etta"}, {"UBa21E0002", "Bih Claire"}},
	)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := "matriculation_number,name\nUBa21E0001,Ayuk Etta\nUBa21E0002,Bih Claire\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}
