package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
)

type fakeExecutor struct {
	inputs []string
	err    error
}

func (f *fakeExecutor) Execute(input string) (engine.Event, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return &engine.HintEvent{MessageStr: "ok: " + input}, nil
}

type fakeAPI struct {
	mu   sync.Mutex
	sent []string
}

func (a *fakeAPI) server(t *testing.T, updates []Update) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": updates})
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var body struct {
				Text string `json:"text"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			a.mu.Lock()
			a.sent = append(a.sent, body.Text)
			a.mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestBot(t *testing.T, api *fakeAPI, exec Executor, allowed ...int64) *Bot {
	srv := api.server(t, nil)
	t.Cleanup(srv.Close)
	client := NewClient("token")
	client.APIBase = srv.URL
	return NewBot(client, 42, allowed, exec, nil)
}

func TestHandleMessage(t *testing.T) {
	t.Run("relays commands and strips bot mentions", func(t *testing.T) {
		api := &fakeAPI{}
		exec := &fakeExecutor{}
		bot := newTestBot(t, api, exec)

		bot.handleMessage(context.Background(), &Message{Chat: Chat{ID: 42}, Text: "/summon@SummonerBot demon_razor"})
		assert.Equal(t, []string{"summon demon_razor"}, exec.inputs)
		require.Len(t, api.sent, 1)
		assert.Equal(t, "```\nok: summon demon_razor\n```", api.sent[0])
	})

	t.Run("ignores other chats and plain text", func(t *testing.T) {
		api := &fakeAPI{}
		exec := &fakeExecutor{}
		bot := newTestBot(t, api, exec)

		bot.handleMessage(context.Background(), &Message{Chat: Chat{ID: 7}, Text: "/status"})
		bot.handleMessage(context.Background(), &Message{Chat: Chat{ID: 42}, Text: "status"})
		assert.Empty(t, exec.inputs)
		assert.Empty(t, api.sent)
	})

	t.Run("refuses users who do not control the hero", func(t *testing.T) {
		api := &fakeAPI{}
		exec := &fakeExecutor{}
		bot := newTestBot(t, api, exec, 1001)

		bot.handleMessage(context.Background(), &Message{From: User{ID: 5, FirstName: "Kit"}, Chat: Chat{ID: 42}, Text: "/turn"})
		assert.Empty(t, exec.inputs)
		require.Len(t, api.sent, 1)
		assert.Contains(t, api.sent[0], "does not control this hero")
	})

	t.Run("reports errors", func(t *testing.T) {
		api := &fakeAPI{}
		exec := &fakeExecutor{err: errors.New("Insufficient essence: need 3, have 0")}
		bot := newTestBot(t, api, exec)

		bot.handleMessage(context.Background(), &Message{Chat: Chat{ID: 42}, Text: "/summon demon_archer_spittlich"})
		require.Len(t, api.sent, 1)
		assert.Equal(t, "Error: Insufficient essence: need 3, have 0", api.sent[0])
	})
}

func TestGetUpdates(t *testing.T) {
	api := &fakeAPI{}
	srv := api.server(t, []Update{{UpdateID: 9, Message: &Message{Text: "/status"}}})
	defer srv.Close()

	client := NewClient("token")
	client.APIBase = srv.URL
	updates, err := client.GetUpdates(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 9, updates[0].UpdateID)
	assert.Equal(t, "/status", updates[0].Message.Text)
}

func TestStartStopsOnCancel(t *testing.T) {
	api := &fakeAPI{}
	bot := newTestBot(t, api, &fakeExecutor{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, bot.Start(ctx))
}

func TestClientReportsTelegramErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	client := NewClient("token")
	client.APIBase = srv.URL
	err := client.SendMessage(context.Background(), 42, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")

	_, err = client.GetUpdates(context.Background(), 0, 0)
	assert.ErrorContains(t, err, "getUpdates")
}
