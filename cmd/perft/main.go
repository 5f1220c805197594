// Perft driver: counts move-tree leaf nodes for a position, optionally
// split per root move, parallelized across root moves, and
// cross-checked against an independent move generator.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chesscore/board"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "position to search from")
	depth := flag.Int("depth", 5, "perft depth")
	divide := flag.Bool("divide", false, "print per-root-move node counts")
	workers := flag.Int("workers", 1, "number of root moves searched in parallel")
	check := flag.Bool("check", false, "cross-check the total against dragontoothmg")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	b, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("bad fen")
	}
	if *depth < 1 {
		log.Fatal().Int("depth", *depth).Msg("depth must be at least 1")
	}
	if *workers < 1 {
		*workers = 1
	}

	start := time.Now()
	moves := b.GenerateLegalMoves()
	counts := make([]uint64, len(moves))

	g := new(errgroup.Group)
	g.SetLimit(*workers)
	for i, m := range moves {
		i, m := i, m
		child := b.Copy()
		child.MakeMove(m)
		g.Go(func() error {
			counts[i] = child.Perft(*depth - 1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("perft failed")
	}

	var total uint64
	for _, n := range counts {
		total += n
	}
	elapsed := time.Since(start)

	if *divide {
		type line struct {
			move  string
			nodes uint64
		}
		lines := make([]line, len(moves))
		for i, m := range moves {
			lines[i] = line{m.Notation(), counts[i]}
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].move < lines[j].move })
		for _, l := range lines {
			fmt.Printf("%s: %d\n", l.move, l.nodes)
		}
	}
	fmt.Printf("perft(%d) = %d\n", *depth, total)
	log.Info().
		Dur("elapsed", elapsed).
		Float64("mnps", float64(total)/1e6/elapsed.Seconds()).
		Msg("perft done")

	if *check {
		oracle := dragontoothmg.ParseFen(*fen)
		want := uint64(dragontoothmg.Perft(&oracle, *depth))
		if want != total {
			log.Fatal().Uint64("got", total).Uint64("want", want).Msg("perft mismatch")
		}
		log.Info().Uint64("nodes", want).Msg("cross-check passed")
	}
}
