package response

import (
	"testing"
)

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		wantPage   int
		wantLimit  int
		wantPages  int
	}{
		{"even split", 1, 10, 100, 1, 10, 10},
		{"partial last page", 2, 10, 95, 2, 10, 10},
		{"empty result", 1, 10, 0, 1, 10, 0},
		{"page below one is clamped", 0, 10, 50, 1, 10, 5},
		{"limit below one gets default", 1, 0, 50, 1, 10, 5},
		{"limit above cap is clamped", 1, 500, 500, 1, 100, 5},
		{"single item", 1, 20, 1, 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := CalculatePagination(tt.page, tt.limit, tt.total)

			if meta.CurrentPage != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", meta.CurrentPage, tt.wantPage)
			}
			if meta.PerPage != tt.wantLimit {
				t.Errorf("PerPage = %d, want %d", meta.PerPage, tt.wantLimit)
			}
			if meta.Total != tt.total {
				t.Errorf("Total = %d, want %d", meta.Total, tt.total)
			}
			if meta.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", meta.TotalPages, tt.wantPages)
			}
		})
	}
}
