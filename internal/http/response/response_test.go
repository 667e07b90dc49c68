package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHTTPStatusMirrorsCode(t *testing.T) {
	cases := map[int]int{
		CodeOK:              http.StatusOK,
		CodeBadRequest:      http.StatusBadRequest,
		CodeConflict:        http.StatusConflict,
		CodeTooManyRequests: http.StatusTooManyRequests,
		CodeInternal:        http.StatusInternalServerError,
		418:                 http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatus(code); got != want {
			t.Fatalf("code %d want status %d got %d", code, want, got)
		}
	}
}

func TestErrorCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-42")

	Forbidden(c, "no")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.StatusCode != CodeForbidden || body.Msg != "no" || body.Data["request_id"] != "req-42" {
		t.Fatalf("unexpected body: %+v", body)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Unauthorized(c, "login")
	if w.Code != http.StatusUnauthorized || w.Body.String() != `{"status_code":401,"msg":"login","data":null}` {
		t.Fatalf("unexpected response without request id: %d %s", w.Code, w.Body.String())
	}
}

func TestAppErrorUnwraps(t *testing.T) {
	cause := errors.New("db down")
	appErr := WrapError(CodeInternal, "error.officer_save_failed", "Failed to save officer", cause)
	if !errors.Is(appErr, cause) {
		t.Fatalf("app error should unwrap to the cause")
	}
	if appErr.Error() != "Failed to save officer: db down" {
		t.Fatalf("unexpected error text %q", appErr.Error())
	}
	if WrapError(CodeBadRequest, "", "bad", nil).Error() != "bad" {
		t.Fatalf("app error without cause should be the message")
	}
}
