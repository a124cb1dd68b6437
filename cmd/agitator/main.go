// Package main - agitator
// Load generator for the coordinator: fills a room with bot players that
// spam legal commands and measures throughput over the websocket API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Config for the agitator.
type Config struct {
	ServerURL      string
	NumClients     int
	ActionInterval time.Duration
	TestDuration   time.Duration
}

// Stats tracks performance counters across all bots.
type Stats struct {
	MessagesSent     int64
	MessagesReceived int64
	Errors           int64
}

var chatLines = []string{
	"I saw someone sneaking around at night...",
	"Who do we vote for?",
	"I am just a civilian, I swear.",
	"The sheriff should speak up.",
	"Let's finish the day already.",
}

func main() {
	serverURL := flag.String("url", "ws://localhost:9000/ws", "WebSocket server URL")
	numClients := flag.Int("clients", 4, "Number of bot players (should match the room size)")
	interval := flag.Duration("interval", 500*time.Millisecond, "Action interval per bot")
	duration := flag.Duration("duration", 60*time.Second, "Test duration")
	flag.Parse()

	config := Config{
		ServerURL:      *serverURL,
		NumClients:     *numClients,
		ActionInterval: *interval,
		TestDuration:   *duration,
	}

	fmt.Println("=========================================")
	fmt.Println("AGITATOR - coordinator load tool")
	fmt.Println("=========================================")
	fmt.Printf("Server:   %s\n", config.ServerURL)
	fmt.Printf("Bots:     %d\n", config.NumClients)
	fmt.Printf("Interval: %v\n", config.ActionInterval)
	fmt.Printf("Duration: %v\n", config.TestDuration)

	ctx, cancel := context.WithTimeout(context.Background(), config.TestDuration)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		fmt.Println("\ninterrupt received, stopping...")
		cancel()
	}()

	stats := runBots(ctx, config)
	printResults(stats, config)
}

func runBots(ctx context.Context, config Config) *Stats {
	stats := &Stats{}
	var wg sync.WaitGroup

	usernames := make([]string, config.NumClients)
	for i := range usernames {
		usernames[i] = fmt.Sprintf("bot_%03d", i)
	}

	for i := 0; i < config.NumClients; i++ {
		wg.Add(1)
		go func(botID int) {
			defer wg.Done()
			runBot(ctx, usernames[botID], usernames, config, stats)
		}(i)

		// Stagger starts to avoid thundering herd
		time.Sleep(20 * time.Millisecond)
	}

	wg.Wait()
	return stats
}

func runBot(ctx context.Context, username string, usernames []string, config Config, stats *Stats) {
	u, err := url.Parse(config.ServerURL)
	if err != nil {
		log.Printf("bot %s: URL parse error: %v", username, err)
		atomic.AddInt64(&stats.Errors, 1)
		return
	}
	q := u.Query()
	q.Set("username", username)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		log.Printf("bot %s: connection failed: %v", username, err)
		atomic.AddInt64(&stats.Errors, 1)
		return
	}
	defer conn.Close()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			atomic.AddInt64(&stats.MessagesReceived, 1)
		}
	}()

	ticker := time.NewTicker(config.ActionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			action := randomAction(username, usernames)
			if err := conn.WriteJSON(action); err != nil {
				atomic.AddInt64(&stats.Errors, 1)
				return
			}
			atomic.AddInt64(&stats.MessagesSent, 1)
		}
	}
}

// randomAction picks one legal-shaped command. The coordinator silently
// drops whatever is stale for the current phase, so bots can fire blind.
func randomAction(username string, usernames []string) map[string]interface{} {
	suspect := usernames[rand.Intn(len(usernames))]
	switch rand.Intn(6) {
	case 0:
		return map[string]interface{}{"type": "send_message", "text": chatLines[rand.Intn(len(chatLines))]}
	case 1:
		return map[string]interface{}{"type": "begin_vote"}
	case 2:
		return map[string]interface{}{"type": "vote", "suspect": suspect}
	case 3:
		return map[string]interface{}{"type": "mafia_vote", "suspect": suspect}
	case 4:
		return map[string]interface{}{"type": "sheriff_vote", "suspect": suspect}
	default:
		return map[string]interface{}{"type": "expose", "target": suspect}
	}
}

func printResults(stats *Stats, config Config) {
	sent := atomic.LoadInt64(&stats.MessagesSent)
	recv := atomic.LoadInt64(&stats.MessagesReceived)
	errs := atomic.LoadInt64(&stats.Errors)

	fmt.Println("\n=========================================")
	fmt.Println("RESULTS")
	fmt.Println("=========================================")
	fmt.Printf("Commands sent:   %d\n", sent)
	fmt.Printf("Views received:  %d\n", recv)
	fmt.Printf("Errors:          %d\n", errs)
	fmt.Printf("Throughput:      %.2f cmd/sec\n", float64(sent)/config.TestDuration.Seconds())

	results := map[string]interface{}{
		"commands_sent":  sent,
		"views_received": recv,
		"errors":         errs,
		"config": map[string]interface{}{
			"clients":  config.NumClients,
			"interval": config.ActionInterval.String(),
			"duration": config.TestDuration.String(),
		},
	}
	jsonData, _ := json.MarshalIndent(results, "", "  ")
	os.WriteFile("agitator_results.json", jsonData, 0644)
	fmt.Println("\nresults saved to agitator_results.json")
}
