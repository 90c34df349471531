package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/viacotur/ast/internal/platform/upstream"
)

type fakeBot struct {
	calls int32
	reply string
	code  int
}

func (f *fakeBot) server(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls, 1)
		if r.URL.Path != "/validar_usuario" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if f.code != 0 {
			w.WriteHeader(f.code)
		}
		w.Write([]byte(f.reply))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestHandler(t *testing.T, f *fakeBot) (*Handler, *echo.Echo) {
	t.Helper()
	ts := f.server(t)
	client, err := upstream.New("telegram-bot", ts.URL, time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("upstream.New: %v", err)
	}
	return NewHandler(NewBot(client), zerolog.Nop()), echo.New()
}

func get(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestResolveUser(t *testing.T) {
	f := &fakeBot{reply: `{"nombre":"Ana Pérez"}`}
	h, e := newTestHandler(t, f)

	c, rec := get(e, "/api/telegram-usuario?telegram_id=987")
	if err := h.ResolveUser(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp UserResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Success || resp.Nombre == nil || *resp.Nombre != "Ana Pérez" || resp.TelegramID != "987" {
		t.Errorf("unexpected response: %s", rec.Body.String())
	}
}

func TestResolveUser_NullName(t *testing.T) {
	f := &fakeBot{reply: `{"nombre":null,"error":"no registrado"}`}
	h, e := newTestHandler(t, f)

	c, rec := get(e, "/api/telegram-usuario?telegram_id=1")
	if err := h.ResolveUser(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &raw)
	if v, ok := raw["nombre"]; !ok || v != nil {
		t.Errorf("expected nombre to be null, got %v", raw["nombre"])
	}
}

func TestResolveUser_MissingID(t *testing.T) {
	f := &fakeBot{reply: `{}`}
	h, e := newTestHandler(t, f)

	c, _ := get(e, "/api/telegram-usuario")
	err := h.ResolveUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if atomic.LoadInt32(&f.calls) != 0 {
		t.Errorf("expected no outbound call, got %d", f.calls)
	}
}

func TestResolveUser_RelaysUpstreamStatus(t *testing.T) {
	f := &fakeBot{code: http.StatusNotFound, reply: `{"detail":"Not Found"}`}
	h, e := newTestHandler(t, f)

	c, _ := get(e, "/api/telegram-usuario?telegram_id=2")
	err := h.ResolveUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected relayed 404, got %v", err)
	}
	if he.Message != "Error del bot de Telegram: 404" {
		t.Errorf("unexpected message %v", he.Message)
	}
}

func TestResolveUser_UpstreamDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := ts.URL
	ts.Close()

	client, _ := upstream.New("telegram-bot", base, time.Second, zerolog.Nop())
	h := NewHandler(NewBot(client), zerolog.Nop())

	c, _ := get(echo.New(), "/api/telegram-usuario?telegram_id=3")
	err := h.ResolveUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestRawUser_Passthrough(t *testing.T) {
	f := &fakeBot{code: http.StatusNotFound, reply: `{"nombre":null,"extra":[1,2]}`}
	h, e := newTestHandler(t, f)

	c, rec := get(e, "/api/usuario?telegram_id=4")
	if err := h.RawUser(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"nombre":null,"extra":[1,2]}` {
		t.Errorf("expected verbatim body, got %s", rec.Body.String())
	}
}

func TestRawUser_MissingID(t *testing.T) {
	f := &fakeBot{reply: `{}`}
	h, e := newTestHandler(t, f)

	c, _ := get(e, "/api/usuario?telegram_id=")
	err := h.RawUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if atomic.LoadInt32(&f.calls) != 0 {
		t.Error("expected no outbound call")
	}
}

func TestRawUser_NonJSON(t *testing.T) {
	f := &fakeBot{reply: `Internal Server Error`}
	h, e := newTestHandler(t, f)

	c, _ := get(e, "/api/usuario?telegram_id=5")
	err := h.RawUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}
