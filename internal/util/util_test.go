package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestQueryHelpers(t *testing.T) {
	c, _ := newContext("/x?aprobatoria=70&contar=on&limit=5&bad=abc")

	f, err := QueryFloat(c, "aprobatoria")
	require.NoError(t, err)
	assert.Equal(t, 70.0, *f)

	f, err = QueryFloat(c, "missing")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = QueryFloat(c, "bad")
	assert.ErrorIs(t, err, ErrInvalidParameter)

	b, err := QueryBool(c, "contar")
	require.NoError(t, err)
	assert.True(t, *b)

	_, err = QueryBool(c, "bad")
	assert.ErrorIs(t, err, ErrInvalidParameter)

	n, err := QueryInt(c, "limit", 200)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = QueryInt(c, "missing", 200)
	require.NoError(t, err)
	assert.Equal(t, 200, n)

	_, err = RequiredQuery(c, "ciclo")
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestRespondError(t *testing.T) {
	c, w := newContext("/x")
	RespondError(c, fmt.Errorf("%w: aprobatoria", ErrInvalidParameter))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Contains(t, body.Message, "aprobatoria")

	c, w = newContext("/x")
	RespondError(c, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
