package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestEnsurePlayerID(t *testing.T) {
	app := fiber.New()
	app.Get("/who", EnsurePlayerID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})

	cases := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"header", "/who", "alice", fiber.StatusOK, "alice"},
		{"query", "/who?playerId=bob", "", fiber.StatusOK, "bob"},
		{"header wins", "/who?playerId=bob", "alice", fiber.StatusOK, "alice"},
		{"missing", "/who", "", fiber.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("X-Player-ID", tc.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Fatalf("status: got %d want %d", resp.StatusCode, tc.status)
			}
			if tc.body != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tc.body {
					t.Fatalf("player: got %q want %q", body, tc.body)
				}
			}
		})
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	app := fiber.New()
	app.Get("/ws/game/:gameId", EnsurePlayerID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ws/game/abc?playerId=alice", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("status: got %d want 426", resp.StatusCode)
	}
}

func TestEnsurePlayerIDOutlivesRequest(t *testing.T) {
	var seen []string
	app := fiber.New()
	app.Get("/who", EnsurePlayerID(), func(c *fiber.Ctx) error {
		seen = append(seen, c.Locals("playerID").(string))
		return c.SendStatus(fiber.StatusOK)
	})

	for _, id := range []string{"alice", "zzzzzzzz", "bob"} {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.Header.Set("X-Player-ID", id)
		if _, err := app.Test(req, -1); err != nil {
			t.Fatalf("request %s: %v", id, err)
		}
	}
	want := []string{"alice", "zzzzzzzz", "bob"}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("stored IDs changed: got %q want %q", seen, want)
		}
	}
}
