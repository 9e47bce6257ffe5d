package manager

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrStatsReadOnly is returned by Save when the existing stats file was
// unreadable and could not be preserved.
var ErrStatsReadOnly = errors.New("stats file is read-only")

// DefaultGroupSize is the number of records of one compression level merged into one.
const DefaultGroupSize = 100

// GameResult describes a finished game.
type GameResult struct {
	SessionID string
	StartTime time.Time
	EndTime   time.Time
	Score     int
	Length    int
	Steps     int
	Cause     string
}

// GameRecord is a single game (CompressionIndex 0) or an aggregate of games.
type GameRecord struct {
	SessionID        string    `json:"sessionId,omitempty"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	Length           int       `json:"length,omitempty"`
	Steps            int       `json:"steps,omitempty"`
	Cause            string    `json:"cause,omitempty"`
	CompressionIndex int       `json:"compressionIndex"`
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MedianScore      float64   `json:"medianScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"`
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
}

// Summary is the aggregate view served to frontends.
type Summary struct {
	GamesPlayed     int     `json:"gamesPlayed"`
	HighScore       int     `json:"highScore"`
	AverageScore    float64 `json:"averageScore"`
	MedianScore     float64 `json:"medianScore"`
	AverageDuration float64 `json:"averageDuration"`
	MaxDuration     float64 `json:"maxDuration"`
}

// StatsManager keeps the history of finished games and persists it as JSON.
// An empty path keeps the history in memory only. A file that cannot be
// parsed is moved to <path>.corrupt before anything is written over it.
type StatsManager struct {
	path      string
	groupSize int
	// set when an unreadable file could not be moved aside
	readOnly bool

	mutex sync.RWMutex
	games []GameRecord
}

func NewStatsManager(path string, groupSize int) (*StatsManager, error) {
	if groupSize < 2 {
		groupSize = DefaultGroupSize
	}
	sm := &StatsManager{
		path:      path,
		groupSize: groupSize,
		games:     make([]GameRecord, 0),
	}
	if err := sm.load(); err != nil {
		return sm, err
	}
	return sm, nil
}

// RecordGame appends a finished game, regroups the history and saves it.
func (sm *StatsManager) RecordGame(result GameResult) error {
	duration := result.EndTime.Sub(result.StartTime).Seconds()

	sm.mutex.Lock()
	sm.games = append(sm.games, GameRecord{
		SessionID:        result.SessionID,
		StartTime:        result.StartTime,
		EndTime:          result.EndTime,
		Score:            result.Score,
		Length:           result.Length,
		Steps:            result.Steps,
		Cause:            result.Cause,
		CompressionIndex: 0,
		GamesCount:       1,
		AverageScore:     float64(result.Score),
		MedianScore:      float64(result.Score),
		MaxScore:         result.Score,
		MinScore:         result.Score,
		AverageDuration:  duration,
		MaxDuration:      duration,
		MinDuration:      duration,
	})
	sm.groupGames()
	sm.mutex.Unlock()

	return sm.Save()
}

// groupGames merges every groupSize records of the same compression level
// into one record of the next level. Caller holds the write lock.
func (sm *StatsManager) groupGames() {
	sort.SliceStable(sm.games, func(i, j int) bool {
		if sm.games[i].CompressionIndex != sm.games[j].CompressionIndex {
			return sm.games[i].CompressionIndex < sm.games[j].CompressionIndex
		}
		return sm.games[i].StartTime.Before(sm.games[j].StartTime)
	})

	for level := 0; ; level++ {
		records := make([]GameRecord, 0)
		for _, g := range sm.games {
			if g.CompressionIndex == level {
				records = append(records, g)
			}
		}
		if len(records) < sm.groupSize {
			break
		}

		var merged []GameRecord
		for i := 0; i < len(records); i += sm.groupSize {
			end := i + sm.groupSize
			if end > len(records) {
				merged = append(merged, records[i:]...)
				break
			}
			merged = append(merged, mergeRecords(records[i:end], level+1))
		}

		remaining := make([]GameRecord, 0, len(sm.games))
		for _, g := range sm.games {
			if g.CompressionIndex != level {
				remaining = append(remaining, g)
			}
		}
		sm.games = append(remaining, merged...)
	}
}

func mergeRecords(group []GameRecord, level int) GameRecord {
	out := GameRecord{
		CompressionIndex: level,
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}
	var totalScore, totalDuration float64
	medians := make([]float64, 0)

	for _, g := range group {
		if g.MaxScore > out.MaxScore {
			out.MaxScore = g.MaxScore
		}
		if g.MinScore < out.MinScore {
			out.MinScore = g.MinScore
		}
		if g.MaxDuration > out.MaxDuration {
			out.MaxDuration = g.MaxDuration
		}
		if g.MinDuration < out.MinDuration {
			out.MinDuration = g.MinDuration
		}
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		out.GamesCount += g.GamesCount
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}

	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	out.MedianScore = median(medians)
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

func (sm *StatsManager) records() []GameRecord {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	out := make([]GameRecord, len(sm.games))
	copy(out, sm.games)
	return out
}

func (sm *StatsManager) HighScore() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	high := 0
	for _, g := range sm.games {
		if g.MaxScore > high {
			high = g.MaxScore
		}
	}
	return high
}

func (sm *StatsManager) Summary() Summary {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	var s Summary
	if len(sm.games) == 0 {
		return s
	}
	var totalScore, totalDuration float64
	medians := make([]float64, 0)
	for _, g := range sm.games {
		s.GamesPlayed += g.GamesCount
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		if g.MaxScore > s.HighScore {
			s.HighScore = g.MaxScore
		}
		if g.MaxDuration > s.MaxDuration {
			s.MaxDuration = g.MaxDuration
		}
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}
	s.AverageScore = totalScore / float64(s.GamesPlayed)
	s.AverageDuration = totalDuration / float64(s.GamesPlayed)
	s.MedianScore = median(medians)
	return s
}

// Save writes the history to disk through a temporary file.
func (sm *StatsManager) Save() error {
	if sm.path == "" {
		return nil
	}
	sm.mutex.RLock()
	if sm.readOnly {
		sm.mutex.RUnlock()
		return errors.Wrapf(ErrStatsReadOnly, "save %s", sm.path)
	}
	data, err := json.MarshalIndent(sm.games, "", "  ")
	sm.mutex.RUnlock()
	if err != nil {
		return errors.Wrap(err, "marshal stats")
	}

	if dir := filepath.Dir(sm.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "create stats directory %s", dir)
		}
	}
	tmp := sm.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	return errors.Wrap(os.Rename(tmp, sm.path), "replace stats file")
}

func (sm *StatsManager) load() error {
	if sm.path == "" {
		return nil
	}
	data, err := os.ReadFile(sm.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read %s", sm.path)
	}
	var games []GameRecord
	if err := json.Unmarshal(data, &games); err != nil {
		aside := sm.path + ".corrupt"
		if rerr := os.Rename(sm.path, aside); rerr != nil {
			sm.readOnly = true
			return errors.Wrapf(err, "parse %s (could not move it aside: %v)", sm.path, rerr)
		}
		return errors.Wrapf(err, "parse %s (moved to %s)", sm.path, aside)
	}
	sm.games = games
	return nil
}
