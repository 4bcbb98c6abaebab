package helpers

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WsMessage struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

var wsClients = make(map[string][]*websocket.Conn)
var wsMu sync.Mutex

func RegisterWsClient(userId string, conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()
	wsClients[userId] = append(wsClients[userId], conn)
}

func UnregisterWsClient(userId string, conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()
	conns := wsClients[userId]
	for i, c := range conns {
		if c == conn {
			wsClients[userId] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(wsClients[userId]) == 0 {
		delete(wsClients, userId)
	}
}

// PushToUser delivers an event to every open dashboard connection of one
// user. Push failures drop the connection and are otherwise ignored; the
// persisted notification is the source of truth.
func PushToUser(userId string, message WsMessage) {
	wsMu.Lock()
	defer wsMu.Unlock()

	messageBytes, err := json.Marshal(message)
	if err != nil {
		log.Println("Error marshaling ws message:", err)
		return
	}

	conns := wsClients[userId]
	alive := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			log.Println("Error writing ws message:", err)
			conn.Close()
			continue
		}
		alive = append(alive, conn)
	}
	wsClients[userId] = alive
	if len(wsClients[userId]) == 0 {
		delete(wsClients, userId)
	}
}
