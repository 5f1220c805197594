// UCI front end. Stdout carries the protocol; diagnostics go to stderr
// so a GUI never sees them.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chesscore/board"
	"chesscore/book"
	"chesscore/engine"
)

const engineName = "chesscore 0.1"

type session struct {
	board    *board.Board
	tt       *engine.TransTable
	zobrist  *board.ZobristTable
	book     *book.Store
	ttSizeMB int

	stopCh  chan struct{}
	results chan engine.Result
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	bookPath := ""
	if len(os.Args) > 2 && os.Args[1] == "-book" {
		bookPath = os.Args[2]
	}

	s := &session{
		board:    board.NewBoard(),
		tt:       engine.NewTransTable(engine.DefaultSizeMB),
		zobrist:  board.NewZobristTable(),
		ttSizeMB: engine.DefaultSizeMB,
	}
	if bookPath != "" {
		var err error
		s.book, err = book.Open(bookPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", bookPath).Msg("could not open book")
		}
		defer s.book.Close()
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name " + engineName)
			fmt.Println("id author chesscore contributors")
			fmt.Printf("option name Hash type spin default %d min 1 max 1024\n", engine.DefaultSizeMB)
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "setoption":
			s.setOption(tokens[1:])
		case "ucinewgame":
			s.board = board.NewBoard()
			s.tt = engine.NewTransTable(s.ttSizeMB)
		case "position":
			s.position(tokens[1:])
		case "go":
			s.startSearch(tokens[1:])
		case "stop":
			s.stopSearch()
		case "quit":
			s.stopSearch()
			return
		}
	}
}

func (s *session) setOption(tokens []string) {
	// "name Hash value 64"
	if len(tokens) >= 4 && strings.EqualFold(tokens[0], "name") &&
		strings.EqualFold(tokens[1], "Hash") && strings.EqualFold(tokens[2], "value") {
		mb, err := strconv.Atoi(tokens[3])
		if err != nil || mb < 1 {
			log.Warn().Str("value", tokens[3]).Msg("bad Hash value")
			return
		}
		s.ttSizeMB = mb
		s.tt.Resize(mb)
	}
}

func (s *session) position(tokens []string) {
	if len(tokens) == 0 {
		return
	}

	var movesAt int
	switch tokens[0] {
	case "startpos":
		s.board = board.NewBoard()
		movesAt = 1
	case "fen":
		fenEnd := len(tokens)
		for i, tok := range tokens {
			if tok == "moves" {
				fenEnd = i
				break
			}
		}
		b, err := board.ParseFEN(strings.Join(tokens[1:fenEnd], " "))
		if err != nil {
			log.Warn().Err(err).Msg("position rejected")
			return
		}
		s.board = b
		movesAt = fenEnd
	default:
		return
	}

	if movesAt < len(tokens) && tokens[movesAt] == "moves" {
		for _, notation := range tokens[movesAt+1:] {
			m, err := s.board.FindMove(notation)
			if err != nil {
				log.Warn().Err(err).Msg("stopping at unplayable move")
				return
			}
			s.board.MakeMove(m)
		}
	}
}

func (s *session) startSearch(tokens []string) {
	s.stopSearch()

	limits := parseGoLimits(tokens)

	// The book answers instantly when it knows this position.
	if s.book != nil {
		key := s.zobrist.KeyFor(s.board)
		if entry, ok, err := s.book.Get(key.Hash); err == nil && ok {
			if _, err := s.board.FindMove(entry.Move); err == nil {
				fmt.Println("bestmove " + entry.Move)
				return
			}
		}
	}

	searcher := engine.NewSearch(s.tt, engine.MaterialEvaluator{}, s.zobrist)
	searcher.Limits = limits

	s.stopCh = make(chan struct{})
	s.results = make(chan engine.Result, 1)
	b := s.board.Copy()
	stop := s.stopCh
	results := s.results
	go func() {
		started := time.Now()
		result := searcher.Run(b, stop)
		if result.Found {
			fmt.Printf("info nodes %d time %d score cp %d pv %s\n",
				result.Nodes, time.Since(started).Milliseconds(),
				result.Score, result.Best.Notation())
			fmt.Println("bestmove " + result.Best.Notation())
		} else {
			fmt.Println("bestmove (none)")
		}
		results <- result
	}()
}

func (s *session) stopSearch() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	<-s.results
	s.stopCh = nil
	s.results = nil
}

func atoi(s string) int { v, _ := strconv.Atoi(s); return v }

func parseGoLimits(tokens []string) engine.SearchLimits {
	var limits engine.SearchLimits
	for i := 0; i+1 < len(tokens); i++ {
		arg := tokens[i+1]
		switch tokens[i] {
		case "depth":
			limits.Depth = atoi(arg)
		case "nodes":
			limits.Nodes = uint64(atoi(arg))
		case "movetime":
			limits.MoveTime = time.Duration(atoi(arg)) * time.Millisecond
		case "wtime":
			limits.WhiteTime = time.Duration(atoi(arg)) * time.Millisecond
		case "btime":
			limits.BlackTime = time.Duration(atoi(arg)) * time.Millisecond
		case "winc":
			limits.WhiteIncrement = time.Duration(atoi(arg)) * time.Millisecond
		case "binc":
			limits.BlackIncrement = time.Duration(atoi(arg)) * time.Millisecond
		}
	}
	return limits
}
