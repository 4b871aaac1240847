package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/pocket_instruments/internal/config"
	"github.com/relabs-tech/pocket_instruments/internal/feedback"
	"github.com/relabs-tech/pocket_instruments/internal/heading"
	"github.com/relabs-tech/pocket_instruments/internal/level"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// wsEvent is one reading pushed over the websocket, tagged with its kind.
type wsEvent struct {
	Kind    string      `json:"kind"` // "heading" or "level"
	Reading interface{} `json:"reading"`
}

// wsHub fans readings out to every connected websocket client.
type wsHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func newWSHub() *wsHub {
	return &wsHub{conns: make(map[*websocket.Conn]bool)}
}

func (h *wsHub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
}

func (h *wsHub) broadcast(ev wsEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteJSON(ev); err != nil {
			c.Close()
			delete(h.conns, c)
		}
	}
}

// RunWeb serves the latest readings as JSON, a live websocket stream, and
// the feedback relay endpoint.
func RunWeb(cfg *config.Config) error {
	var (
		mu          sync.RWMutex
		lastHeading heading.Reading
		haveHeading bool
		lastLevel   level.Reading
		haveLevel   bool
	)

	hub := newWSHub()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	hdgToken := client.Subscribe(cfg.TopicHeading, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r heading.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("web: heading unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastHeading = r
		haveHeading = true
		mu.Unlock()
		hub.broadcast(wsEvent{Kind: "heading", Reading: r})
	})
	hdgToken.Wait()
	if hdgToken.Error() != nil {
		return hdgToken.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicHeading)

	lvlToken := client.Subscribe(cfg.TopicLevel, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r level.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("web: level unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastLevel = r
		haveLevel = true
		mu.Unlock()
		hub.broadcast(wsEvent{Kind: "level", Reading: r})
	})
	lvlToken.Wait()
	if lvlToken.Error() != nil {
		return lvlToken.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicLevel)

	http.HandleFunc("/api/heading", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveHeading {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastHeading); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	http.HandleFunc("/api/level", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveLevel {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastLevel); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		hub.add(conn)
	})

	fb := feedback.NewClient(cfg.FeedbackURL)
	http.HandleFunc("/api/feedback", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if cfg.FeedbackURL == "" {
			http.Error(w, "no feedback collector configured", http.StatusServiceUnavailable)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64<<10))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err := fb.Submit(r.Context(), string(body)); err != nil {
			if err == feedback.ErrEmptyFeedback {
				http.Error(w, "empty feedback", http.StatusBadRequest)
				return
			}
			log.Printf("web: feedback relay error: %v", err)
			http.Error(w, "relay failed", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
