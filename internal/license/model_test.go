package license_test

import (
	"encoding/json"
	"testing"

	"rssw.eu/licensepanel/internal/license"
)

func TestListDecode(t *testing.T) {
	t.Run("decodes records in order", func(t *testing.T) {
		body := `{"licenses":[
			{"customer":"Acme","permanentId":"P-1","product":"SONARQUBE","type":"COMMERCIAL","repository":"rssw-oe-main","expiration":"2027-01-01T00:00:00"},
			{"customer":"Globex","permanentId":"P-2","product":"SONARLINT","type":"EVALUATION","repository":"rssw-oe","expiration":"2026-12-31T00:00:00"}
		]}`

		var l license.List
		if err := json.Unmarshal([]byte(body), &l); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if l.Len() != 2 {
			t.Fatalf("expected 2 records, got %d", l.Len())
		}

		want := []string{"Acme", "P-1", "SONARQUBE", "COMMERCIAL", "rssw-oe-main", "2027-01-01T00:00:00"}
		got := l.Licenses[0].Cells()
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("cell %d: expected %q, got %q", i, want[i], got[i])
			}
		}
		if l.Licenses[1].Customer != "Globex" {
			t.Errorf("expected second record Globex, got %q", l.Licenses[1].Customer)
		}
	})

	t.Run("absent and null fields are empty", func(t *testing.T) {
		var l license.List
		if err := json.Unmarshal([]byte(`{"licenses":[{"customer":"Acme","product":null}]}`), &l); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		cells := l.Licenses[0].Cells()
		if cells[0] != "Acme" {
			t.Errorf("expected customer Acme, got %q", cells[0])
		}
		for i, c := range cells[1:] {
			if c != "" {
				t.Errorf("cell %d: expected empty, got %q", i+1, c)
			}
		}
	})

	t.Run("scalars keep their literal text", func(t *testing.T) {
		var l license.List
		body := `{"licenses":[{"permanentId":12345,"type":true,"repository":{"x":1}}]}`
		if err := json.Unmarshal([]byte(body), &l); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		r := l.Licenses[0]
		if r.PermanentID != "12345" {
			t.Errorf("expected permanentId 12345, got %q", r.PermanentID)
		}
		if r.Type != "true" {
			t.Errorf("expected type true, got %q", r.Type)
		}
		if r.Repository != "" {
			t.Errorf("expected object repository to render empty, got %q", r.Repository)
		}
	})

	t.Run("numbers print in shortest form", func(t *testing.T) {
		tests := []struct {
			in   string
			want string
		}{
			{`1e2`, "100"},
			{`12345678`, "12345678"},
			{`1.50`, "1.5"},
			{`-0.0`, "0"},
			{`0.000001`, "0.000001"},
			{`1e-7`, "1e-7"},
			{`1e21`, "1e+21"},
			{`2.5E+22`, "2.5e+22"},
		}

		for _, tt := range tests {
			var l license.List
			if err := json.Unmarshal([]byte(`{"licenses":[{"permanentId":`+tt.in+`}]}`), &l); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if got := l.Licenses[0].PermanentID.String(); got != tt.want {
				t.Errorf("%s: expected %q, got %q", tt.in, tt.want, got)
			}
		}
	})

	t.Run("accepts legacy licences key", func(t *testing.T) {
		var l license.List
		if err := json.Unmarshal([]byte(`{"licences":[{"customer":"Old"}]}`), &l); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if l.Len() != 1 || l.Licenses[0].Customer != "Old" {
			t.Errorf("expected one legacy record, got %+v", l.Licenses)
		}
	})

	t.Run("missing list is empty", func(t *testing.T) {
		var l license.List
		if err := json.Unmarshal([]byte(`{}`), &l); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if l.Len() != 0 {
			t.Errorf("expected empty list, got %d", l.Len())
		}
	})

	t.Run("rejects non-object body", func(t *testing.T) {
		var l license.List
		if err := json.Unmarshal([]byte(`[1,2]`), &l); err == nil {
			t.Error("expected error for array body, got nil")
		}
	})
}

func TestColumns(t *testing.T) {
	want := []license.Column{
		{Title: "Company name"},
		{Title: "Server ID", Width: 200},
		{Title: "Product", Width: 100},
		{Title: "Type", Width: 100},
		{Title: "Repository", Width: 130},
		{Title: "Expiration", Width: 200},
	}
	if len(license.Columns) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(license.Columns))
	}
	for i, c := range want {
		if license.Columns[i] != c {
			t.Errorf("column %d: expected %+v, got %+v", i, c, license.Columns[i])
		}
	}
}
