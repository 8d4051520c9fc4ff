package get_calendar_grid

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
)

func TestToUseCaseRequest_Defaults(t *testing.T) {
	req, err := ToUseCaseRequest("abc12345", url.Values{})
	require.NoError(t, err)

	assert.Equal(t, "abc12345", req.ShortCode)
	assert.Equal(t, 0, req.Page)
	assert.Equal(t, domain.DefaultPageCapacity, req.Capacity)
	assert.False(t, req.EditMode)
	assert.Nil(t, req.ParticipantID)
}

func TestToUseCaseRequest_AllParams(t *testing.T) {
	query := url.Values{
		"page":          {"2"},
		"layout":        {"narrow"},
		"editMode":      {"true"},
		"participantId": {"p1"},
	}

	req, err := ToUseCaseRequest("abc12345", query)
	require.NoError(t, err)

	assert.Equal(t, 2, req.Page)
	assert.Equal(t, domain.NarrowPageCapacity, req.Capacity)
	assert.True(t, req.EditMode)
	require.NotNil(t, req.ParticipantID)
	assert.Equal(t, "p1", *req.ParticipantID)
}

func TestToUseCaseRequest_Invalid(t *testing.T) {
	_, err := ToUseCaseRequest("abc12345", url.Values{"page": {"-1"}})
	assert.Error(t, err)

	_, err = ToUseCaseRequest("abc12345", url.Values{"page": {"x"}})
	assert.Error(t, err)

	_, err = ToUseCaseRequest("abc12345", url.Values{"layout": {"tablet"}})
	assert.Error(t, err)

	_, err = ToUseCaseRequest("abc12345", url.Values{"editMode": {"maybe"}})
	assert.Error(t, err)
}
