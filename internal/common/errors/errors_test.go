package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeDatabaseInsertFailed, 3},
		{ErrCodeQueryExecutionFailed, 3},
		{ErrCodeSearchQueryFailed, 3},
		{ErrCodeQueryTimeout, 2},
		{ErrCodeSearchTimeout, 2},
		{ErrCodeDuplicateApplication, 0},
		{ErrCodeInvalidQueryType, 0},
		{ErrCodeProfileValidationFailed, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetRetryCount(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewDatabaseInsertFailedError(errors.New("connection reset"))

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "DATABASE_INSERT_FAILED", bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Equal(t, "DATABASE_INSERT_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
}

func TestConvertToBPMNError_NonRetryableOverridesRetries(t *testing.T) {
	stdErr := NewDuplicateApplicationError("player-1", "listing-9")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "DUPLICATE_APPLICATION", bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Equal(t, 0, bpmnErr.Retries)
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:      "PROFILE_NOT_FOUND",
		Message:   "Transfer profile not found",
		Retryable: false,
		ErrorVariables: map[string]interface{}{
			"playerId": "player-1",
		},
	}

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "PROFILE_NOT_FOUND", vars["errorCode"])
	assert.Equal(t, "player-1", vars["playerId"])
	assert.Equal(t, false, vars["retryable"])
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "PROFILE", GetErrorCategory(ErrCodeProfileNotFound))
	assert.Equal(t, "MATCHING", GetErrorCategory(ErrCodeMatchScoreFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeTemplateNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrorCode("SOMETHING_ELSE")))
}
