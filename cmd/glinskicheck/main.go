package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/park285/glinski-chess/internal/msgcat"
	"github.com/park285/glinski-chess/internal/probe"
	"github.com/park285/glinski-chess/pkg/hexdto"
)

func main() {
	baseURL := flag.String("base", envOr("GLINSKI_BASE_URL", "http://127.0.0.1:8080"), "server base URL")
	wsURL := flag.String("ws", os.Getenv("GLINSKI_WS_URL"), "WebSocket URL; empty skips the watch")
	session := flag.String("session", envOr("GLINSKI_SESSION_ID", "glinskicheck"), "session id announced on connect; without it the probe only watches once both seats are taken")
	board := flag.String("board", "", "write the rendered board (white|black) to board-<as>.png")
	watch := flag.Duration("watch", 10*time.Second, "how long to observe the game")
	flag.Parse()
	sessionSet := false
	flag.Visit(func(f *flag.Flag) { sessionSet = sessionSet || f.Name == "session" })

	cat, err := msgcat.New(os.Getenv("MESSAGES_DIR"))
	if err != nil {
		log.Fatalf("message catalog: %v", err)
	}

	client := probe.NewClient(*baseURL, probe.WithTimeout(8*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h, err := client.Health(ctx)
	if err != nil {
		log.Printf("/healthz error: %v", err)
	} else {
		fmt.Println(cat.RenderOr("probe.health", h, "status="+h.Status))
	}

	if *board != "" {
		png, err := client.BoardPNG(ctx, *board)
		if err != nil {
			log.Printf("/board.png error: %v", err)
		} else if err := os.WriteFile("board-"+*board+".png", png, 0o644); err != nil {
			log.Printf("write board: %v", err)
		}
	}

	if *wsURL == "" {
		log.Println("no WebSocket URL; skipping watch")
		return
	}

	w := probe.NewWatcher(*wsURL, *session, 5)
	w.OnStateChange(func(state probe.State) {
		log.Printf("WS state: %s", state)
	})
	w.OnGame(func(g *hexdto.Game) {
		fmt.Println(cat.RenderOr("probe.state", describe(g), "state received"))
	})

	cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer ccancel()
	if sessionSet {
		// An explicit -session joins as that session, seat and all.
		err = w.Connect(cctx)
	} else {
		err = probe.Spectate(cctx, client, w)
	}
	if errors.Is(err, probe.ErrSeatsOpen) {
		log.Println("a seat is still open; pass -session to join as a player")
		return
	}
	if err != nil {
		log.Printf("WS connect error: %v", err)
		return
	}

	t := time.NewTimer(*watch)
	<-t.C

	_ = w.Close(context.Background())
}

type stateLine struct {
	Role     string
	Pieces   int
	LastMove string
}

func describe(g *hexdto.Game) stateLine {
	line := stateLine{Role: "spectator", Pieces: len(g.AvailableMoves)}
	if g.Player != nil {
		line.Role = *g.Player
	}
	if m := g.LastMove; m != nil {
		line.LastMove = fmt.Sprintf("%d:%d-%d:%d", m.From.FileIdx, m.From.RankIdx, m.To.FileIdx, m.To.RankIdx)
	}
	return line
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
