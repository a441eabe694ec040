package palette

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const textPalette = `310
Black
000000
B5200
Snow White
FFFFFF
321
Red
C72B3B

`

func TestLoad_Text(t *testing.T) {
	p, err := Load(strings.NewReader(textPalette), FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"B5200", "310", "321"}
	if !slices.Equal(p.Names(), want) {
		t.Errorf("Names() = %v, want %v", p.Names(), want)
	}
	red, err := p.Lookup("321")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if red.Hex() != "#c72b3b" || red.Description() != "Red" {
		t.Errorf("321 = %q %q", red.Hex(), red.Description())
	}
}

func TestLoad_TextTruncated(t *testing.T) {
	_, err := Load(strings.NewReader("310\nBlack\n"), FormatText)
	if err == nil {
		t.Fatal("expected error for truncated entry")
	}
}

func TestLoad_TextBadColor(t *testing.T) {
	_, err := Load(strings.NewReader("310\nBlack\nnothex\n"), FormatText)
	if err == nil {
		t.Fatal("expected error for malformed color")
	}
	if !strings.Contains(err.Error(), "entry 1") {
		t.Errorf("error = %q, want entry position", err)
	}
}

func TestLoad_JSON(t *testing.T) {
	data := `[
		{"name": "Ecru", "description": "Ecru", "color": "#F0EADA"},
		{"name": "3865", "description": "Winter White", "color": "F9F7F1"}
	]`
	p, err := Load(strings.NewReader(data), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(p.Names(), []string{"Ecru", "3865"}) {
		t.Errorf("Names() = %v", p.Names())
	}
}

func TestLoad_JSONMalformed(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"name":`), FormatJSON); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestLoad_Empty(t *testing.T) {
	if _, err := Load(strings.NewReader(""), FormatText); err == nil {
		t.Fatal("expected error for empty palette")
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	if _, err := Load(strings.NewReader(textPalette), "csv"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoadFile_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "flosses.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"name":"310","description":"Black","color":"000000"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile(json): %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}

	txtPath := filepath.Join(dir, "flosses.txt")
	if err := os.WriteFile(txtPath, []byte(textPalette), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err = LoadFile(txtPath)
	if err != nil {
		t.Fatalf("LoadFile(txt): %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault_Bundled(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}
	if p.Len() < 100 {
		t.Errorf("bundled palette has %d flosses", p.Len())
	}
	for _, name := range []string{"310", "321", "B5200", "Ecru", "3865"} {
		if _, err := p.Lookup(name); err != nil {
			t.Errorf("bundled palette missing %s", name)
		}
	}

	again, _ := Default()
	if again != p {
		t.Error("Default() should return the shared palette")
	}
}

func TestOpen_EmptyPathUsesBundled(t *testing.T) {
	p, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\"): %v", err)
	}
	d, _ := Default()
	if p != d {
		t.Error("Open(\"\") should return the bundled palette")
	}
}
