package compose_grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
)

func groupTokens(groups [][]domain.CalendarDay) [][]string {
	out := make([][]string, 0, len(groups))
	for _, group := range groups {
		tokens := make([]string, 0, len(group))
		for _, d := range group {
			tokens = append(tokens, d.Original)
		}
		out = append(out, tokens)
	}
	return out
}

func TestSortAndGroup_GapRule(t *testing.T) {
	// 14 и 15 августа смежны, 19 августа отстоит дальше двух дней
	days := domain.ClassifyDayTokens([]string{"2024-08-19", "2024-08-14", "2024-08-15"})
	groups := sortAndGroup(days)

	assert.Equal(t, [][]string{
		{"2024-08-14", "2024-08-15"},
		{"2024-08-19"},
	}, groupTokens(groups))
}

func TestSortAndGroup_TwoDayGapStillJoins(t *testing.T) {
	// пропущенный выходной (зазор ровно два дня) не разрывает блок
	days := domain.ClassifyDayTokens([]string{"2024-08-16", "2024-08-14"})
	groups := sortAndGroup(days)

	assert.Equal(t, [][]string{{"2024-08-14", "2024-08-16"}}, groupTokens(groups))
}

func TestSortAndGroup_WeekdaysTrailDates(t *testing.T) {
	days := domain.ClassifyDayTokens([]string{"fri", "2024-08-14", "mon"})
	groups := sortAndGroup(days)

	assert.Equal(t, [][]string{
		{"2024-08-14"},
		{"mon", "fri"},
	}, groupTokens(groups))
}

func TestSortAndGroup_Empty(t *testing.T) {
	assert.Empty(t, sortAndGroup(nil))
}

func TestPaginate(t *testing.T) {
	tokens := []string{
		"2024-08-01", "2024-08-02", "2024-08-03", "2024-08-04", "2024-08-05",
		"2024-08-06", "2024-08-07", "2024-08-08", "2024-08-09", "2024-08-10",
	}
	groups := sortAndGroup(domain.ClassifyDayTokens(tokens))

	pages := paginate(groups, domain.DefaultPageCapacity)
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 7)
	assert.Len(t, pages[1], 3)
	assert.Equal(t, "2024-08-08", pages[1][0].Original)

	narrow := paginate(groups, domain.NarrowPageCapacity)
	require.Len(t, narrow, 4)
	assert.Len(t, narrow[3], 1)
}

func TestPaginate_InvalidCapacityFallsBack(t *testing.T) {
	groups := sortAndGroup(domain.ClassifyDayTokens([]string{"2024-08-01", "2024-08-02"}))
	pages := paginate(groups, 0)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0], 2)
}

func TestRegroupPage_SplitGroupRejoins(t *testing.T) {
	// граница страницы разрезала группу; внутри страницы правило смежности
	// применяется заново к тому, что на ней оказалось
	days := domain.ClassifyDayTokens([]string{
		"2024-08-01", "2024-08-02", "2024-08-06", "2024-08-07",
	})
	pages := paginate(sortAndGroup(days), 3)
	require.Len(t, pages, 2)

	first := regroupPage(pages[0])
	assert.Equal(t, [][]string{
		{"2024-08-01", "2024-08-02"},
		{"2024-08-06"},
	}, groupTokens(first))

	second := regroupPage(pages[1])
	assert.Equal(t, [][]string{{"2024-08-07"}}, groupTokens(second))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, clampPage(-5, 3))
	assert.Equal(t, 1, clampPage(1, 3))
	assert.Equal(t, 2, clampPage(99, 3))
	assert.Equal(t, 0, clampPage(2, 0))
}
