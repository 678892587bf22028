// Package nqueens provides a small local-search solver for the N-Queens
// placement problem. It exists to give the solver service and its tests a
// real long-running operation that honours cooperative termination.
package nqueens

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ddsimoes/optaplanner/pkg/solver"
)

// Problem asks for n queens on an n×n board with no two attacking each other.
type Problem struct {
	N int `json:"n"`
}

// Solution assigns one column per row. Score counts attacking pairs,
// negated: 0 is a feasible placement.
type Solution struct {
	N       int   `json:"n"`
	Columns []int `json:"columns"`
	Score   int   `json:"score"`
}

func (s Solution) Feasible() bool {
	return s.Score == 0
}

// Solver runs min-conflicts search with random restarts until it finds a
// feasible placement, is told to stop, or its context is cancelled. When
// stopped early it returns the best placement found so far.
type Solver struct {
	solver.TerminationFlag
	seed int64
}

func NewSolver() *Solver {
	return &Solver{seed: time.Now().UnixNano()}
}

// NewSeededSolver fixes the random seed, for deterministic tests.
func NewSeededSolver(seed int64) *Solver {
	return &Solver{seed: seed}
}

const restartAfterIdle = 64

func (s *Solver) Solve(ctx context.Context, problem Problem) (Solution, error) {
	n := problem.N
	if n < 1 {
		return Solution{}, fmt.Errorf("board size must be positive, got %d", n)
	}

	rng := rand.New(rand.NewSource(s.seed))
	cols := rng.Perm(n)
	best := append([]int(nil), cols...)
	bestScore := score(cols)
	idle := 0

	for bestScore < 0 {
		select {
		case <-ctx.Done():
			return Solution{N: n, Columns: best, Score: bestScore}, ctx.Err()
		default:
		}
		if s.ShouldTerminate() {
			break
		}

		row := rng.Intn(n)
		improved := stepRow(cols, row)
		if cur := score(cols); cur > bestScore {
			bestScore = cur
			copy(best, cols)
			idle = 0
		} else if !improved {
			idle++
		}
		if idle > restartAfterIdle*n {
			copy(cols, rng.Perm(n))
			idle = 0
		}
	}

	return Solution{N: n, Columns: best, Score: bestScore}, nil
}

// stepRow moves the queen in row to its least-conflicted column. Reports
// whether the move strictly reduced that queen's conflicts.
func stepRow(cols []int, row int) bool {
	n := len(cols)
	bestCol := cols[row]
	bestConflicts := conflictsAt(cols, row, cols[row])
	for col := range n {
		if col == cols[row] {
			continue
		}
		if c := conflictsAt(cols, row, col); c < bestConflicts {
			bestConflicts = c
			bestCol = col
		}
	}
	moved := bestCol != cols[row]
	cols[row] = bestCol
	return moved
}

func conflictsAt(cols []int, row, col int) int {
	conflicts := 0
	for r, c := range cols {
		if r == row {
			continue
		}
		if c == col || abs(c-col) == abs(r-row) {
			conflicts++
		}
	}
	return conflicts
}

// score is the negated number of attacking pairs.
func score(cols []int) int {
	attacking := 0
	for i := range cols {
		for j := i + 1; j < len(cols); j++ {
			if cols[i] == cols[j] || abs(cols[i]-cols[j]) == j-i {
				attacking++
			}
		}
	}
	return -attacking
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
