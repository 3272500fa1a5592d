package web

import (
	"context"
	"encoding/json"
	"sync"

	"TickerLens/internal/analyzer"
	"TickerLens/internal/display"
	"TickerLens/internal/hub"
	"TickerLens/internal/recorder"
	"TickerLens/internal/session"
)

const (
	slowTitle  = "Slow down"
	slowDetail = "Too many analyses, try again shortly."
)

type clientMsg struct {
	Type   string `json:"type"`
	Ticker string `json:"ticker"`
}

type stateMsg struct {
	Type  string          `json:"type"`
	State session.State   `json:"state"`
	Panel []display.Field `json:"panel,omitempty"`
}

func newStateMsg(st session.State) stateMsg {
	msg := stateMsg{Type: "state", State: st}
	if st.Record != nil {
		msg.Panel = display.MetricsPanel(st.Record.Metrics)
	}
	return msg
}

// wsSession holds the analyzer panel state of one websocket connection.
type wsSession struct {
	srv    *DashboardServer
	client *hub.Client

	mu    sync.Mutex
	state session.State
	// seq identifies the submit a pending analysis belongs to.
	seq uint64
}

func (s *DashboardServer) newWSSession(c *hub.Client) hub.MessageHandler {
	ws := &wsSession{srv: s, client: c, state: session.Idle()}
	ws.client.Send(newStateMsg(ws.state))
	return ws.handle
}

func (ws *wsSession) handle(ctx context.Context, data []byte) {
	var msg clientMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		ws.srv.logger.Debug().Err(err).Msg("bad websocket message")
		return
	}
	switch msg.Type {
	case "analyze":
		ws.submit(ctx, msg.Ticker)
	case "clear":
		ws.clear()
	}
}

// clear resets the panel. A pending analysis is discarded when it lands.
func (ws *wsSession) clear() {
	ws.mu.Lock()
	ws.state = ws.state.Transition(session.Clear{})
	st := ws.state
	ws.mu.Unlock()
	ws.client.Send(newStateMsg(st))
}

func (ws *wsSession) submit(ctx context.Context, raw string) {
	ws.mu.Lock()
	if ws.state.Busy() {
		ws.mu.Unlock()
		return
	}
	// Ignored and blank submits cost no token.
	if session.NormalizeTicker(raw) != "" && !ws.srv.limiter.Allow() {
		ws.mu.Unlock()
		ws.client.Send(hub.NewToast(hub.LevelDestructive, slowTitle, slowDetail))
		return
	}
	ws.state = ws.state.Transition(session.Submit{Ticker: raw})
	st := ws.state
	ws.seq++
	seq := ws.seq
	ws.mu.Unlock()

	ws.client.Send(newStateMsg(st))
	if st.Status == session.StatusInvalid {
		ws.client.Send(hub.NewToast(hub.LevelDestructive, blankTitle, blankDetail))
		return
	}

	go func() {
		if err := ws.srv.simulateLatency(ctx); err != nil {
			return
		}
		rec := analyzer.Generate(st.Ticker)

		ws.mu.Lock()
		if ws.seq != seq || !ws.state.Busy() {
			ws.mu.Unlock()
			return
		}
		ws.state = ws.state.Transition(session.Success{Record: rec})
		next := ws.state
		ws.mu.Unlock()

		ws.srv.record(st.Ticker, rec, recorder.SourceWebSocket)
		ws.client.Send(newStateMsg(next))
		ws.client.Send(hub.NewToast(hub.LevelSuccess, completeTitle, completeDetail(st.Ticker, rec.Verdict)))
	}()
}
