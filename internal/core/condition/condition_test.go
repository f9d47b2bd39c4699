package condition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptySpecIsValid(t *testing.T) {
	require.NoError(t, Spec{}.Validate())
}

func TestValidate_RejectsEmptyUserIDs(t *testing.T) {
	s := Spec{UserIDs: []int64{}}
	err := s.Validate()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidSpec)
}

func TestValidate_RejectsNegativePagination(t *testing.T) {
	neg := -1
	require.ErrorIs(t, Spec{Limit: &neg}.Validate(), ErrInvalidSpec)
	require.ErrorIs(t, Spec{Offset: &neg}.Validate(), ErrInvalidSpec)
}

func TestParse_EmptyMap(t *testing.T) {
	s, err := Parse(map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, s.Start)
	assert.Nil(t, s.Finish)
	assert.Nil(t, s.UserIDs)
	assert.Nil(t, s.Limit)
	assert.Nil(t, s.Offset)
}

func TestParse_AllKeys(t *testing.T) {
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	s, err := Parse(map[string]any{
		"start_time":  start,
		"finish_time": "2026-08-31T00:00:00Z",
		"user_ids":    []int64{1, 2, 3},
		"limit":       100,
		"offset":      200,
	})
	require.NoError(t, err)
	require.NotNil(t, s.Start)
	require.NotNil(t, s.Finish)
	assert.True(t, s.Start.Equal(start))
	assert.True(t, s.Finish.Equal(start.AddDate(0, 0, 1)))
	assert.Equal(t, []int64{1, 2, 3}, s.UserIDs)
	assert.Equal(t, 100, *s.Limit)
	assert.Equal(t, 200, *s.Offset)
}

func TestParse_RejectsUnknownKey(t *testing.T) {
	_, err := Parse(map[string]any{"user_id": 1})
	require.ErrorIs(t, err, ErrInvalidSpec)
}

func TestParse_RejectsMalformedTimestamp(t *testing.T) {
	_, err := Parse(map[string]any{"start_time": "yesterday"})
	require.ErrorIs(t, err, ErrInvalidSpec)

	_, err = Parse(map[string]any{"finish_time": 42})
	require.ErrorIs(t, err, ErrInvalidSpec)
}

func TestParse_RejectsNonNumericUserIDs(t *testing.T) {
	// The fail-fast that keeps unsanitized input away from query building.
	_, err := Parse(map[string]any{"user_ids": []any{1, "2; DROP TABLE users"}})
	require.ErrorIs(t, err, ErrInvalidSpec)

	_, err = Parse(map[string]any{"user_ids": []any{nil}})
	require.ErrorIs(t, err, ErrInvalidSpec)
}

func TestParse_NumericStringsAccepted(t *testing.T) {
	s, err := Parse(map[string]any{"user_ids": []string{"10", "11"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, s.UserIDs)
}

func TestParse_RejectsEmptyUserIDList(t *testing.T) {
	_, err := Parse(map[string]any{"user_ids": []any{}})
	require.ErrorIs(t, err, ErrInvalidSpec)
}

func TestPaged_DoesNotMutateReceiver(t *testing.T) {
	base := Windowed(time.Unix(0, 0), time.Unix(100, 0))
	paged := base.Paged(50, 10)
	assert.Nil(t, base.Limit)
	assert.Nil(t, base.Offset)
	require.NotNil(t, paged.Limit)
	assert.Equal(t, 50, *paged.Limit)
	assert.Equal(t, 10, *paged.Offset)
}
