package src

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtractJSONFenced(t *testing.T) {
	input := "```json\n{\"key\": \"value\"}\n```"
	data, err := extractJSON(input)
	if err != nil {
		t.Fatalf("extractJSON returned error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("expected valid JSON, got error: %v", err)
	}

	want := map[string]string{"key": "value"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected map: got %v want %v", got, want)
	}
}

func TestExtractJSONBackticksAndTrailingComma(t *testing.T) {
	input := "Here you go:\n[{`path`: `src/server.go`, `description`: `HTTP handlers`,},]\n"
	data, err := extractJSON(input)
	if err != nil {
		t.Fatalf("extractJSON returned error: %v", err)
	}

	var got []FileDescriptor
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("expected valid JSON, got error: %v", err)
	}

	want := []FileDescriptor{{
		Path:        "src/server.go",
		Description: "HTTP handlers",
	}}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected descriptors: got %#v want %#v", got, want)
	}
}

func TestExtractJSONSurroundingProse(t *testing.T) {
	input := "The plan is as follows: {\"name\": \"Notes\"} ... hope that helps!"
	data, err := extractJSON(input)
	if err != nil {
		t.Fatalf("extractJSON returned error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("expected valid JSON, got error: %v", err)
	}
	if got["name"] != "Notes" {
		t.Fatalf("unexpected map: %v", got)
	}
}

func TestExtractJSONNoJSON(t *testing.T) {
	if _, err := extractJSON("no structured data here"); err == nil {
		t.Fatalf("expected error when no JSON present")
	}
}
