package common

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestHandleSessionCookie_NewVisitorGetsCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/discover", nil)
	w := httptest.NewRecorder()

	id := HandleSessionCookie(nil, w, r)
	if id == 0 {
		t.Error("Expected a non-zero session id")
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" {
		t.Fatalf("Expected a sid cookie but got %v", cookies)
	}
	if cookies[0].Value != strconv.Itoa(id) {
		t.Errorf("cookie %s does not match returned id %d", cookies[0].Value, id)
	}
}

func TestHandleSessionCookie_ReusesValidCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/discover", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "12345"})
	w := httptest.NewRecorder()

	if id := HandleSessionCookie(nil, w, r); id != 12345 {
		t.Errorf("Expected 12345 but got %d", id)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("a valid cookie should not be rewritten")
	}
}

func TestHandleSessionCookie_CorruptCookieGetsFreshId(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/discover", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-number"})
	w := httptest.NewRecorder()

	id := HandleSessionCookie(nil, w, r)
	if id == 0 {
		t.Error("corrupt cookies must not collapse onto session 0")
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != strconv.Itoa(id) {
		t.Errorf("Expected the fresh id to be set, got %v", cookies)
	}
}
