package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyrics-sections/pkg/sections"
)

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("[Chorus]\nla"), "-")
	if err != nil || got != "[Chorus]\nla" {
		t.Fatalf("stdin: got %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "song.txt")
	if err := os.WriteFile(path, []byte("[Intro]\nhey"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = readInput(nil, path)
	if err != nil || got != "[Intro]\nhey" {
		t.Fatalf("file: got %q, %v", got, err)
	}

	if _, err := readInput(nil, filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestPrintResult(t *testing.T) {
	result, err := sections.NewParser(nil).Parse(context.Background(), "[Verse 1: Ann & Bob]\nhello\n[Chorus]\nla la", "Band")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	t.Run("Text", func(t *testing.T) {
		jsonOutput = false
		var buf bytes.Buffer
		if err := printResult(&buf, result, nil); err != nil {
			t.Fatalf("printResult returned error: %v", err)
		}
		want := "[Verse 1] (Ann, Bob)\nhello\n\n[Chorus] (Band)\nla la\n\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		jsonOutput = true
		defer func() { jsonOutput = false }()

		var buf bytes.Buffer
		if err := printResult(&buf, result, nil); err != nil {
			t.Fatalf("printResult returned error: %v", err)
		}
		var decoded sections.Result
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded.Sections) != 2 || decoded.Sections[1].Key != "Chorus" {
			t.Errorf("unexpected decoded result %+v", decoded)
		}
	})

	t.Run("NoStructure", func(t *testing.T) {
		jsonOutput = false
		var buf bytes.Buffer
		if err := printResult(&buf, nil, sections.ErrNoSectionStructure); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "do not contain information about sections") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestParseCmdRequiresArtist(t *testing.T) {
	cmd := parseCmd()
	cmd.SetArgs([]string{})
	cmd.SetIn(strings.NewReader("[Verse]\nx"))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "artist") {
		t.Errorf("expected a missing --artist error, got %v", err)
	}
}
