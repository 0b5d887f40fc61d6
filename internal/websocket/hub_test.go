package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"tradeinsight/internal/models"
)

// ============================================================
// Unit Tests
// ============================================================

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub returned nil")
	}

	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestOriginChecker_Check(t *testing.T) {
	checker := &OriginChecker{
		allowedOrigins: map[string]struct{}{
			"http://localhost:3000": {},
			"https://example.com":   {},
		},
		allowAll: false,
	}

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},                       // empty origin allowed
		{"http://localhost:3000", true},  // allowed
		{"https://example.com", true},    // allowed
		{"http://evil.com", false},       // not allowed
		{"http://localhost:8080", false}, // not in list
	}

	for _, tt := range tests {
		got := checker.Check(tt.origin)
		if got != tt.want {
			t.Errorf("Check(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestOriginChecker_AllowAll(t *testing.T) {
	checker := &OriginChecker{
		allowAll: true,
	}

	origins := []string{
		"http://localhost:3000",
		"https://evil.com",
		"http://anything.example.org",
	}

	for _, origin := range origins {
		if !checker.Check(origin) {
			t.Errorf("allowAll=true but Check(%q) = false", origin)
		}
	}
}

func TestHub_Stop(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	hub.Stop()

	select {
	case <-done:
		// Run() завершился
	case <-time.After(1 * time.Second):
		t.Error("Hub.Run() did not exit after Stop()")
	}
}

func TestHub_BroadcastInsightsUpdate(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		hub:  hub,
		send: make(chan []byte, clientSendBufferSize),
	}
	hub.register <- client

	// Ждем регистрации
	time.Sleep(10 * time.Millisecond)
	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}

	insights := []models.Insight{
		{Type: "golden_hours", Title: "Golden Trading Window: 9:00-11:00", Value: 440, Confidence: 0.4},
	}
	hub.BroadcastInsightsUpdate("acc-1", insights)

	select {
	case raw := <-client.send:
		var msg InsightsUpdateMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("failed to decode message: %v", err)
		}
		if msg.Type != MessageTypeInsightsUpdate {
			t.Errorf("expected type insightsUpdate, got %s", msg.Type)
		}
		if msg.AccountID != "acc-1" {
			t.Errorf("expected account acc-1, got %s", msg.AccountID)
		}
		if msg.Count != 1 || len(msg.Insights) != 1 {
			t.Errorf("expected 1 insight, got count=%d len=%d", msg.Count, len(msg.Insights))
		}
	case <-time.After(1 * time.Second):
		t.Fatal("client did not receive broadcast")
	}
}

func TestNewInsightsUpdateMessage_NilInsights(t *testing.T) {
	msg := NewInsightsUpdateMessage("acc-1", nil)

	if msg.Insights == nil {
		t.Error("expected non-nil insights slice")
	}
	if msg.Count != 0 {
		t.Errorf("expected count 0, got %d", msg.Count)
	}

	// nil должен сериализоваться как [], а не null
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) == "" {
		t.Fatal("empty JSON")
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["insights"] == nil {
		t.Error("insights serialized as null, expected []")
	}
}

func TestHub_SlowClientRemoved(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// Клиент с заполненным буфером, который никто не читает
	client := &Client{
		hub:  hub,
		send: make(chan []byte, 1),
	}
	client.send <- []byte("stale")

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastInsightsUpdate("acc-1", nil)
	time.Sleep(20 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("expected slow client to be removed, got %d clients", hub.ClientCount())
	}
}

// ============================================================
// Benchmarks
// ============================================================

// BenchmarkHub_Broadcast тестирует скорость broadcast
func BenchmarkHub_Broadcast(b *testing.B) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	insights := []models.Insight{
		{Type: "golden_hours", Title: "Golden Trading Window: 9:00-11:00", Value: 440, Confidence: 0.4},
		{Type: "danger_hour", Title: "High-Risk Hour: 19:00", Value: -180, Confidence: 0.85},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hub.BroadcastInsightsUpdate("acc-1", insights)
	}
}

// BenchmarkOriginChecker_Check тестирует скорость проверки origin
func BenchmarkOriginChecker_Check(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		originChecker.Check("http://localhost:3000")
	}
}

// BenchmarkClientPool тестирует sync.Pool для клиентов
func BenchmarkClientPool(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		client := clientPool.Get().(*Client)
		clientPool.Put(client)
	}
}

// ============================================================
// Parallel Stress Test
// ============================================================

func TestHub_ConcurrentOperations(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	var wg sync.WaitGroup
	const goroutines = 10
	const operations = 100

	// Конкурентные broadcast
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < operations; j++ {
				hub.BroadcastInsightsUpdate("acc-1", nil)
			}
		}(i)
	}

	// Конкурентное чтение ClientCount
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < operations; j++ {
				_ = hub.ClientCount()
			}
		}()
	}

	wg.Wait()
}
