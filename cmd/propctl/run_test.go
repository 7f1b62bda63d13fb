package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mamadbah2/realty/internal/domain/models"
	"github.com/mamadbah2/realty/internal/repository/mock"
)

func writeListings(t *testing.T) string {
	t.Helper()
	listings := append(mock.Properties(), models.Property{ID: "free", Price: 0})
	raw, err := json.Marshal(listings)
	if err != nil {
		t.Fatalf("marshal listings: %v", err)
	}
	path := filepath.Join(t.TempDir(), "listings.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write listings: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRankJSON(t *testing.T) {
	path := writeListings(t)

	out, errOut, err := execute(t, "rank", path, "--json", "--top", "3", "--type", "Condo,Duplex")
	if err != nil {
		t.Fatalf("rank returned error: %v", err)
	}
	if !strings.Contains(errOut, `"free"`) {
		t.Errorf("stderr = %q, want the rejected listing reported", errOut)
	}

	var ranked []models.Property
	if err := json.Unmarshal([]byte(out), &ranked); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3", len(ranked))
	}
	for i, p := range ranked {
		if p.PropertyType != models.PropertyTypeCondo && p.PropertyType != models.PropertyTypeDuplex {
			t.Errorf("unexpected type %s", p.PropertyType)
		}
		if i > 0 && ranked[i-1].AIScore < p.AIScore {
			t.Errorf("not ranked at %d", i)
		}
	}
}

func TestRankFilterFlagZeroIsABound(t *testing.T) {
	out, _, err := execute(t, "rank", writeListings(t), "--json", "--max-price", "0")
	if err != nil {
		t.Fatalf("rank returned error: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("output = %q, want empty list", out)
	}
}

func TestRankTable(t *testing.T) {
	out, _, err := execute(t, "rank", writeListings(t), "--zip", "80205")
	if err != nil {
		t.Fatalf("rank returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "RANK") || !strings.Contains(lines[1], "prop-003") {
		t.Errorf("output = %q", out)
	}
}

func TestAnalyticsAndOptions(t *testing.T) {
	path := writeListings(t)

	out, _, err := execute(t, "analytics", path)
	if err != nil {
		t.Fatalf("analytics returned error: %v", err)
	}
	if !strings.Contains(out, "Properties") || !strings.Contains(out, "10") {
		t.Errorf("analytics output = %q", out)
	}

	out, _, err = execute(t, "options", path, "--json")
	if err != nil {
		t.Fatalf("options returned error: %v", err)
	}
	var opts models.FilterOptions
	if err := json.Unmarshal([]byte(out), &opts); err != nil {
		t.Fatalf("decode options: %v", err)
	}
	if len(opts.PropertyTypes) != 5 {
		t.Errorf("property types = %v", opts.PropertyTypes)
	}
}

func TestCommandErrors(t *testing.T) {
	if _, _, err := execute(t, "rank"); err == nil {
		t.Error("expected error without a file argument")
	}
	if _, _, err := execute(t, "rank", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
	if _, _, err := execute(t, "seed", writeListings(t), "--mongo-uri", ""); err == nil {
		t.Error("expected error without a mongo uri")
	}
}
