package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/samber/lo"

	. "github.com/cricklet/magicchess/internal/game"
	. "github.com/cricklet/magicchess/internal/helpers"
	"github.com/cricklet/magicchess/internal/movegen"
)

// usage: perft [profile] depth [fen]
func main() {
	args := os.Args[1:]

	if lo.Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath("data/CmdPerftMain"))
		defer p.Stop()
	}
	args = lo.Without(args, "profile")

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: perft [profile] depth [fen]")
		os.Exit(2)
	}

	depth, parseErr := strconv.Atoi(args[0])
	if parseErr != nil || depth < 1 {
		fmt.Fprintln(os.Stderr, "invalid depth:", args[0])
		os.Exit(2)
	}

	fen := StartFen
	if len(args) > 1 {
		fen = strings.Join(args[1:], " ")
	}

	pos, err := ParseFen(fen)
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	generator, err := movegen.NewDefault()
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err.String())
		os.Exit(1)
	}

	fmt.Println(pos.Unicode())

	start := time.Now()
	entries, total := generator.PerftDivide(pos, depth, func(total int) ProgressBar {
		return CreateProgressBar(total, fmt.Sprintf("perft %v", depth))
	})
	elapsed := time.Since(start)

	for _, entry := range entries {
		fmt.Printf("%v: %v\n", entry.Move, entry.Nodes)
	}
	fmt.Println()
	fmt.Printf("Nodes searched: %v\n", total)
	fmt.Printf("%v in %v (%v nodes/s)\n",
		humanize.Comma(int64(total)),
		elapsed.Round(time.Millisecond),
		humanize.Comma(int64(float64(total)/MaxFloat(elapsed.Seconds(), 1e-9))))
	fmt.Println("move buffers:", movegen.StatsMovesBuffer())
}
