package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	root := errors.New("connection refused")
	err := Wrapf(root, CodeDBError, "query user id=%s", "abc")

	assert.ErrorIs(t, err, root)
	assert.Equal(t, "query user id=abc: connection refused", err.Error())
	assert.Equal(t, CodeDBError, GetCode(fmt.Errorf("outer: %w", err)))
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("boom")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(CodeNotFound, "Post not found")))
	assert.False(t, IsNotFound(New(CodeInvalidParam, "bad")))
	assert.False(t, IsNotFound(nil))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		CodeSuccess:         http.StatusOK,
		CodeInvalidParam:    http.StatusBadRequest,
		CodeUserExist:       http.StatusBadRequest,
		CodeNotFound:        http.StatusNotFound,
		CodeUserNotExist:    http.StatusNotFound,
		CodeTooManyRequests: http.StatusTooManyRequests,
		CodeDBError:         http.StatusInternalServerError,
		CodeUpstream:        http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %d", code)
	}
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(New(CodeDuplicate, "dup")))
	assert.True(t, IsClientError(fmt.Errorf("ctx: %w", New(CodeNotFound, "gone"))))
	assert.False(t, IsClientError(New(CodeDBError, "db")))
	assert.False(t, IsClientError(errors.New("plain")))
}
