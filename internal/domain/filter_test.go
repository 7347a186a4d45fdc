package domain

import (
	"slices"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var filterNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local) // Wednesday

func bm(created time.Time, isFuture bool, scheduled time.Time) *Bookmark {
	return &Bookmark{
		ID:            "b1",
		UID:           1,
		URL:           "https://example.com",
		IsFuture:      isFuture,
		ScheduledDate: scheduled,
		CreatedAt:     created,
	}
}

func TestFilterQuery_Match(t *testing.T) {
	tests := []struct {
		name     string
		bookmark *Bookmark
		query    FilterQuery
		want     bool
	}{
		{
			name:     "today matches same day",
			bookmark: bm(time.Date(2025, 6, 18, 0, 0, 1, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeToday},
			want:     true,
		},
		{
			name:     "today rejects yesterday",
			bookmark: bm(time.Date(2025, 6, 17, 23, 59, 59, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeToday},
			want:     false,
		},
		{
			name:     "week includes sunday start",
			bookmark: bm(time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeWeek},
			want:     true,
		},
		{
			name:     "week includes saturday end",
			bookmark: bm(time.Date(2025, 6, 21, 23, 59, 59, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeWeek},
			want:     true,
		},
		{
			name:     "week includes last instant of saturday",
			bookmark: bm(time.Date(2025, 6, 21, 23, 59, 59, 999999999, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeWeek},
			want:     true,
		},
		{
			name:     "week rejects previous saturday",
			bookmark: bm(time.Date(2025, 6, 14, 23, 59, 59, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeWeek},
			want:     false,
		},
		{
			name:     "week uses scheduled date for future bookmarks",
			bookmark: bm(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), true, time.Date(2025, 6, 20, 0, 0, 0, 0, time.Local)),
			query:    FilterQuery{Mode: FilterModeWeek},
			want:     true,
		},
		{
			name:     "month matches same month",
			bookmark: bm(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeMonth},
			want:     true,
		},
		{
			name:     "month rejects same month previous year",
			bookmark: bm(time.Date(2024, 6, 18, 12, 0, 0, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeMonth},
			want:     false,
		},
		{
			name:     "future matches pending scheduled bookmark",
			bookmark: bm(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), true, time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)),
			query:    FilterQuery{Mode: FilterModeFuture},
			want:     true,
		},
		{
			name:     "future rejects already effective scheduled bookmark",
			bookmark: bm(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), true, time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)),
			query:    FilterQuery{Mode: FilterModeFuture},
			want:     false,
		},
		{
			name:     "future rejects plain bookmark with future created time",
			bookmark: bm(time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeFuture},
			want:     false,
		},
		{
			name:     "date matches chosen day",
			bookmark: bm(time.Date(2025, 3, 5, 8, 0, 0, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterModeDate, Date: time.Date(2025, 3, 5, 0, 0, 0, 0, time.Local)},
			want:     true,
		},
		{
			name:     "unknown mode lets everything through",
			bookmark: bm(time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local), false, time.Time{}),
			query:    FilterQuery{Mode: FilterMode("bogus")},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.Match(tt.bookmark, filterNow); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterBookmarks_KeepsOrder(t *testing.T) {
	list := []*Bookmark{
		bm(time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local), false, time.Time{}),
		bm(time.Date(2025, 6, 17, 9, 0, 0, 0, time.Local), false, time.Time{}),
		bm(time.Date(2025, 6, 18, 7, 0, 0, 0, time.Local), false, time.Time{}),
	}
	got := slices.Collect(FilterBookmarks(list, FilterQuery{Mode: FilterModeToday}, filterNow))
	if len(got) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(got))
	}
	if got[0] != list[0] || got[1] != list[2] {
		t.Error("filtered list does not preserve input order")
	}
}

// 序列可以提前中断，也可以从头重复遍历
func TestFilterBookmarks_LazyAndRestartable(t *testing.T) {
	list := []*Bookmark{
		bm(time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local), false, time.Time{}),
		bm(time.Date(2025, 6, 18, 8, 0, 0, 0, time.Local), false, time.Time{}),
		bm(time.Date(2025, 6, 18, 7, 0, 0, 0, time.Local), false, time.Time{}),
	}
	seq := FilterBookmarks(list, FilterQuery{Mode: FilterModeToday}, filterNow)

	var first *Bookmark
	for b := range seq {
		first = b
		break
	}
	if first != list[0] {
		t.Fatal("early break should stop after the first match")
	}

	// 同一个序列再次遍历时从头开始
	if got := slices.Collect(seq); len(got) != 3 || got[0] != list[0] {
		t.Errorf("second pass yielded %d bookmarks, want full 3 from the start", len(got))
	}
}

// 验证筛选结果永远是输入的子集，且 all 模式不丢数据

func TestProperty_FilterSubsetAndAllKeepsEverything(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genBookmark := gopter.CombineGens(
		gen.Int64Range(0, 365*24*3600),
		gen.Bool(),
		gen.Int64Range(0, 365*24*3600),
	).Map(func(vals []interface{}) *Bookmark {
		created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local).Add(time.Duration(vals[0].(int64)) * time.Second)
		var scheduled time.Time
		if vals[1].(bool) {
			scheduled = time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local).Add(time.Duration(vals[2].(int64)) * time.Second)
		}
		return bm(created, vals[1].(bool), scheduled)
	})

	genMode := gen.OneConstOf(
		FilterModeAll, FilterModeToday, FilterModeWeek,
		FilterModeMonth, FilterModeFuture, FilterModeDate,
	)

	properties.Property("filter result is a subset of the input", prop.ForAll(
		func(list []*Bookmark, mode FilterMode) bool {
			q := FilterQuery{Mode: mode, Date: filterNow}
			got := slices.Collect(FilterBookmarks(list, q, filterNow))
			if len(got) > len(list) {
				return false
			}
			seen := make(map[*Bookmark]bool, len(list))
			for _, b := range list {
				seen[b] = true
			}
			for _, b := range got {
				if !seen[b] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genBookmark),
		genMode,
	))

	properties.Property("all mode keeps every bookmark", prop.ForAll(
		func(list []*Bookmark) bool {
			return CountFiltered(list, FilterQuery{Mode: FilterModeAll}, filterNow) == int64(len(list))
		},
		gen.SliceOf(genBookmark),
	))

	properties.Property("future results are all pending", prop.ForAll(
		func(list []*Bookmark) bool {
			got := slices.Collect(FilterBookmarks(list, FilterQuery{Mode: FilterModeFuture}, filterNow))
			for _, b := range got {
				if !b.IsFuture || !b.EffectiveDate().After(filterNow) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genBookmark),
	))

	properties.TestingRun(t)
}
