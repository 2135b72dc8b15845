package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jetwong/betbook"
)

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bets" {
			t.Errorf("path = %q, want /api/bets", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", got)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := r.URL.Query().Get("page_size"); got != "20" {
			t.Errorf("page_size = %q, want 20", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{
				"id":       7,
				"bet_time": "2025-08-20 19:30:00",
				"status":   "settled",
				"result":   "win",
				"stake":    "100",
				"odds":     "2",
				"bet_data": map[string]any{"league": "英超"},
			}},
			"total": 41,
		})
	}))
	defer srv.Close()

	items, total, err := New(srv.URL, "tok").List(context.Background(), 2, 20)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if total != 41 {
		t.Errorf("total = %d, want 41", total)
	}
	if len(items) != 1 || items[0].ID != 7 {
		t.Fatalf("items = %+v, want one record with id 7", items)
	}

	r := betbook.Normalize(betbook.FromPersisted(items[0]))
	if r.League != "英超" {
		t.Errorf("League = %q, want decoded from bet_data", r.League)
	}
	if r.Outcome != betbook.Win {
		t.Errorf("Outcome = %q, want win", r.Outcome)
	}
}

func TestClient_CreateUpdateDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]any{"message": "创建成功", "id": 12})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	ctx := context.Background()
	rec := betbook.Normalize(betbook.Record{Stake: dec("10"), Odds: dec("2")})

	id, err := c.Create(ctx, rec.Persisted())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if id != 12 {
		t.Errorf("id = %d, want 12", id)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/bets" {
		t.Errorf("request = %s %s, want POST /api/bets", gotMethod, gotPath)
	}

	if err := c.Update(ctx, "12", rec.Persisted()); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/bets/12" {
		t.Errorf("request = %s %s, want PUT /api/bets/12", gotMethod, gotPath)
	}

	if err := c.Delete(ctx, "12"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/bets/12" {
		t.Errorf("request = %s %s, want DELETE /api/bets/12", gotMethod, gotPath)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "用户名或密码错误"})
	}))
	defer srv.Close()

	_, _, err := New(srv.URL, "stale").List(context.Background(), 1, 20)
	if !betbook.IsUnauthorized(err) {
		t.Fatalf("List() = %v, want an unauthorized RemoteError", err)
	}
	var re *betbook.RemoteError
	if !asRemote(err, &re) || re.Message != "用户名或密码错误" {
		t.Errorf("err = %v, want the server detail carried over", err)
	}
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("request = %s %s, want POST /api/auth/login", r.Method, r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["username"] != "jet" || req["password"] != "secret" {
			t.Errorf("credentials = %v, want jet/secret", req)
		}
		json.NewEncoder(w).Encode(map[string]any{"message": "登录成功", "token": "tok-123"})
	}))
	defer srv.Close()

	token, err := Login(context.Background(), srv.URL, "jet", "secret")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
}

func TestClient_Config(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"starting_capital": 10000,
			"fixed_ratio":      0.03,
			"kelly_factor":     0.5,
			"stop_loss_limit":  3,
			"theme":            "light",
		})
	}))
	defer srv.Close()

	cfg, err := New(srv.URL, "tok").Config(context.Background())
	if err != nil {
		t.Fatalf("Config() failed: %v", err)
	}
	if !cfg.StartingCapital.Equal(dec("10000")) {
		t.Errorf("StartingCapital = %s, want 10000", cfg.StartingCapital)
	}
	if cfg.StopLossLimit != 3 {
		t.Errorf("StopLossLimit = %d, want 3", cfg.StopLossLimit)
	}
}
