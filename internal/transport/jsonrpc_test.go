package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type codedErr struct{}

func (codedErr) Error() string             { return "DUPLICATE_PERIOD: already recorded" }
func (codedErr) CodeValue() string         { return "DUPLICATE_PERIOD" }
func (codedErr) MessageValue() string      { return "already recorded" }
func (codedErr) DetailsValue() any         { return nil }
func (codedErr) RecoveryHintValue() string { return "pick another month" }

func TestParseRequest(t *testing.T) {
	body := bytes.NewBufferString(`{"jsonrpc":"2.0","method":"get_event","params":{"id":"1"},"id":1}`)
	req, err := ParseRequest(body)
	require.NoError(t, err)
	require.Equal(t, "2.0", req.JSONRPC)
	require.Equal(t, "get_event", req.Method)
	require.Equal(t, json.RawMessage(`{"id":"1"}`), req.Params)
}

func TestParseRequest_Invalid(t *testing.T) {
	_, err := ParseRequest(bytes.NewBufferString(`{"jsonrpc":"2.0","id":1}`))
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseRequest(bytes.NewBufferString(`{not json`))
	require.ErrorIs(t, err, ErrParse)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 1, ErrInvalidParams, "bad params", nil)

	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), `"error"`)
}

func TestWriteHandlerError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteHandlerError(rec, 7, codedErr{})

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, ErrApplication, resp.Error.Code)
	require.Equal(t, "already recorded", resp.Error.Message)
	require.Equal(t, "DUPLICATE_PERIOD", resp.Error.Data.(map[string]any)["code"])

	rec = httptest.NewRecorder()
	WriteHandlerError(rec, 7, errors.New("boom"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, ErrInternal, resp.Error.Code)
}
