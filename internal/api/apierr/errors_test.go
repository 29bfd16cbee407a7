package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/othello/internal/model"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrGameNotFound, http.StatusNotFound, CodeGameNotFound},
		{model.ErrGameComplete, http.StatusConflict, CodeGameComplete},
		{model.ErrGameAbandoned, http.StatusGone, CodeGameAbandoned},
		{model.ErrNotPlayerTurn, http.StatusConflict, CodeNotYourTurn},
		{model.ErrSeatIsBot, http.StatusForbidden, CodeNotYourTurn},
		{model.ErrInvalidSeatToken, http.StatusForbidden, CodeInvalidSeatToken},
		{fmt.Errorf("%w: z9", model.ErrInvalidPosition), http.StatusBadRequest, CodeInvalidPosition},
		{fmt.Errorf("%w: a1", model.ErrIllegalMove), http.StatusUnprocessableEntity, CodeIllegalMove},
		{fmt.Errorf("%w: 1x1", model.ErrInvalidBoardSize), http.StatusBadRequest, CodeInvalidBoardSize},
		{fmt.Errorf("%w: minimax", model.ErrUnknownStrategy), http.StatusBadRequest, CodeUnknownStrategy},
		{model.ErrInvalidRules, http.StatusBadRequest, CodeInvalidRequest},
		{NewInvalidRequestError("bad body"), http.StatusBadRequest, CodeInvalidRequest},
		{errors.New("redis: connection refused"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestInternalErrorsHideDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("dial tcp 10.0.0.1:5432: secret detail"))

	assert.NotContains(t, rec.Body.String(), "secret detail")
}
