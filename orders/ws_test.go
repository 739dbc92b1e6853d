package orders

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewOrderHub()
	go hub.Run()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "u123",
	}
	hub.register <- client

	event := map[string]string{"orderId": "order-1", "trackingStatus": "delivered"}
	data, _ := json.Marshal(event)
	hub.broadcast <- broadcastMsg{Room: "u123", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
	hub.Stop()
}

func TestNotifyUserReachesAdminRoom(t *testing.T) {
	hub := NewOrderHub()
	go hub.Run()

	admin := &Client{
		Send: make(chan []byte, 10),
		Room: adminRoom,
	}
	hub.register <- admin

	hub.NotifyUser("u123", map[string]string{"orderId": "order-1"})

	select {
	case got := <-admin.Send:
		var event map[string]string
		if err := json.Unmarshal(got, &event); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		if event["orderId"] != "order-1" {
			t.Fatalf("expected order-1, got %s", event["orderId"])
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for admin event")
	}

	hub.unregister <- admin
	hub.Stop()
}
