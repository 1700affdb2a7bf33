package requesthandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitbucket.org/yellowmessenger/audiolab/configmanager"
	"github.com/labstack/echo"
)

func TestProcessRateLimit(t *testing.T) {
	InitProcessLimiter(configmanager.ServerConf{ProcessRequestsPerSecond: 0.001, ProcessBurst: 1})
	defer InitProcessLimiter(configmanager.ServerConf{})

	e := echo.New()
	codes := make([]int, 2)
	for i := range codes {
		req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		if err := (ProcessHandler{}).Any(e.NewContext(req, rec)); err != nil {
			t.Fatal(err)
		}
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusBadRequest || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [400 429]", codes)
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	if got := requestID(e.NewContext(req, httptest.NewRecorder())); got != "abc" {
		t.Errorf("requestID = %q", got)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := requestID(e.NewContext(req, httptest.NewRecorder())); len(got) != 36 {
		t.Errorf("generated requestID = %q", got)
	}
}

func TestErrorEnvelope(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Any("/process", ProcessHandler{}.Any)

	tests := []struct {
		testcase string
		path     string
		code     int
		msg      string
	}{
		{testcase: "MethodNotAllowed", path: "/process", code: http.StatusMethodNotAllowed, msg: "Method Not Allowed"},
		{testcase: "UnknownRoute", path: "/nope", code: http.StatusNotFound, msg: "Not Found"},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.code {
			t.Errorf("[%s] code = %d, want %d", tc.testcase, rec.Code, tc.code)
		}
		var body struct {
			HTTPCode int `json:"http_code"`
			Response struct {
				Msg    string `json:"msg"`
				Status string `json:"status"`
			} `json:"response"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("[%s] bad json %q: %v", tc.testcase, rec.Body.String(), err)
		}
		if body.HTTPCode != tc.code || body.Response.Status != "failure" || body.Response.Msg != tc.msg {
			t.Errorf("[%s] body = %+v", tc.testcase, body)
		}
	}
}
