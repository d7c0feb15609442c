package pagination

import "testing"

func TestPageRequestDefaults(t *testing.T) {
	cases := []struct {
		name     string
		in       PageRequest
		wantPage int
		wantSize int
	}{
		{"empty", PageRequest{}, 1, DefaultPageSize},
		{"explicit", PageRequest{Page: 3, PageSize: 10}, 3, 10},
		{"clamped", PageRequest{Page: 1, PageSize: 1000}, 1, MaxPageSize},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := c.in
			p.Defaults()
			if p.Page != c.wantPage || p.PageSize != c.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", p.Page, p.PageSize, c.wantPage, c.wantSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := PageRequest{Page: 3, PageSize: 20}
	if p.Offset() != 40 {
		t.Errorf("expected offset 40, got %d", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, 1, 20, 41)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("expected empty slice, got nil")
	}
}
