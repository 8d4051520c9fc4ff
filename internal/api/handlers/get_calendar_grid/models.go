package get_calendar_grid

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	composeGrid "github.com/m04kA/SMC-MeetupService/internal/usecase/compose_grid"
)

// layout значения query параметра layout
const (
	layoutWide   = "wide"
	layoutNarrow = "narrow"
)

// ToUseCaseRequest собирает запрос композиции сетки из query параметров.
// page - номер страницы с нуля, layout - wide (7 колонок) или narrow (3 колонки).
func ToUseCaseRequest(shortCode string, query url.Values) (*composeGrid.Request, error) {
	req := &composeGrid.Request{
		ShortCode: shortCode,
		Capacity:  domain.DefaultPageCapacity,
	}

	if id := query.Get("participantId"); id != "" {
		req.ParticipantID = &id
	}

	if pageStr := query.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 0 {
			return nil, fmt.Errorf("invalid page %q", pageStr)
		}
		req.Page = page
	}

	switch query.Get("layout") {
	case "", layoutWide:
		req.Capacity = domain.DefaultPageCapacity
	case layoutNarrow:
		req.Capacity = domain.NarrowPageCapacity
	default:
		return nil, fmt.Errorf("invalid layout %q", query.Get("layout"))
	}

	if editStr := query.Get("editMode"); editStr != "" {
		edit, err := strconv.ParseBool(editStr)
		if err != nil {
			return nil, fmt.Errorf("invalid editMode %q", editStr)
		}
		req.EditMode = edit
	}

	return req, nil
}
