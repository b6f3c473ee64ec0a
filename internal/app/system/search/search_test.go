package search

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPrefix(t *testing.T) {
	if Prefix("   ") != nil {
		t.Error("blank query should give nil")
	}
	got := Prefix("Fak. Teknik")
	want := `^fak\. teknik`
	if got["$regex"] != want {
		t.Errorf("Prefix = %v, want %q", got["$regex"], want)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"active", true, true},
		{"ACTIVE", true, true},
		{"aktif", true, true},
		{"inactive", false, true},
		{" Nonaktif ", false, true},
		{"", false, false},
		{"all", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Status(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Status(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/units?q=Prodi&status=inactive", nil)
	f := Filter(r, "nama_ci")
	if f["status"] != false {
		t.Errorf("status = %v", f["status"])
	}
	m, ok := f["nama_ci"].(bson.M)
	if !ok || m["$regex"] != "^prodi" {
		t.Errorf("nama_ci = %v", f["nama_ci"])
	}

	empty := Filter(httptest.NewRequest("GET", "/units", nil), "nama_ci")
	if len(empty) != 0 {
		t.Errorf("expected empty filter, got %v", empty)
	}
}
