package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit", "limit=50&offset=10", 50, 10},
		{"limit capped", "limit=9999", MaxLimit, 0},
		{"negative offset clamped", "offset=-5", DefaultLimit, 0},
		{"garbage falls back", "limit=abc&offset=xyz", DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromContext(newContext(t, tt.query))
			if p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Fatalf("got %+v, want limit=%d offset=%d", p, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestResponseHasMore(t *testing.T) {
	if r := NewResponse(nil, 100, 20, 0); !r.HasMore {
		t.Fatal("expected HasMore for first page of 100")
	}
	if r := NewResponse(nil, 100, 20, 80); r.HasMore {
		t.Fatal("expected no more after final page")
	}
}

func TestParamsSQL(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if got := p.SQL(); got != "LIMIT 20 OFFSET 40" {
		t.Fatalf("SQL() = %q", got)
	}
	if p.NextOffset() != 60 {
		t.Fatalf("NextOffset() = %d", p.NextOffset())
	}
}
