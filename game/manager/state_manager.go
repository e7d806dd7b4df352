package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"snake-hamiltonian/game/types"
)

// RunRecord describes one finished game.
type RunRecord struct {
	UUID      string     `json:"uuid"`
	Seed      uint64     `json:"seed"`
	Grid      types.Grid `json:"grid"`
	Score     int        `json:"score"`
	Length    int        `json:"length"`
	Steps     int        `json:"steps"`
	Skips     int        `json:"skips"`
	Reason    string     `json:"reason"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
}

type GameStats struct {
	HighScore int         `json:"highScore"`
	Runs      []RunRecord `json:"runs"`
}

// StateManager keeps the run history and persists it as JSON. An empty
// filename keeps everything in memory.
type StateManager struct {
	filename  string
	highScore int
	runs      []RunRecord
	mutex     sync.RWMutex
}

// Summary aggregates the recorded runs.
type Summary struct {
	Games           int
	Wins            int
	AverageScore    float64
	MedianScore     float64
	MaxScore        int
	AverageSteps    float64
	AverageDuration time.Duration
}

// NewStateManager loads previous stats from filename when it exists.
func NewStateManager(filename string) (*StateManager, error) {
	sm := &StateManager{
		filename: filename,
		runs:     make([]RunRecord, 0),
	}
	if filename == "" {
		return sm, nil
	}
	if err := sm.LoadStats(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return sm, nil
}

func (sm *StateManager) SaveStats(filename string) error {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.save(filename)
}

func (sm *StateManager) save(filename string) error {
	stats := GameStats{
		HighScore: sm.highScore,
		Runs:      sm.runs,
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("stats: encode: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("stats: ensure dir: %w", err)
		}
	}
	return os.WriteFile(filename, data, 0o644)
}

func (sm *StateManager) LoadStats(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("stats: decode %s: %w", filename, err)
	}

	sm.mutex.Lock()
	defer sm.mutex.Unlock()
	sm.highScore = stats.HighScore
	sm.runs = stats.Runs
	return nil
}

// AddRun appends a finished game and saves when a file is configured.
func (sm *StateManager) AddRun(run RunRecord) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	sm.runs = append(sm.runs, run)
	if run.Score > sm.highScore {
		sm.highScore = run.Score
	}
	if sm.filename == "" {
		return nil
	}
	return sm.save(sm.filename)
}

func (sm *StateManager) GetHighScore() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.highScore
}

// GetRuns returns a copy of the recorded runs.
func (sm *StateManager) GetRuns() []RunRecord {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	runs := make([]RunRecord, len(sm.runs))
	copy(runs, sm.runs)
	return runs
}

// Summarize computes averages over every recorded run. A run counts as a win
// when its reason equals winReason.
func (sm *StateManager) Summarize(winReason string) Summary {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	sum := Summary{Games: len(sm.runs)}
	if sum.Games == 0 {
		return sum
	}

	scores := make([]int, 0, len(sm.runs))
	var totalScore, totalSteps int
	var totalDuration time.Duration
	for _, run := range sm.runs {
		if run.Reason == winReason {
			sum.Wins++
		}
		if run.Score > sum.MaxScore {
			sum.MaxScore = run.Score
		}
		scores = append(scores, run.Score)
		totalScore += run.Score
		totalSteps += run.Steps
		totalDuration += run.EndTime.Sub(run.StartTime)
	}

	n := float64(sum.Games)
	sum.AverageScore = float64(totalScore) / n
	sum.AverageSteps = float64(totalSteps) / n
	sum.AverageDuration = totalDuration / time.Duration(sum.Games)

	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		sum.MedianScore = float64(scores[mid-1]+scores[mid]) / 2
	} else {
		sum.MedianScore = float64(scores[mid])
	}
	return sum
}
