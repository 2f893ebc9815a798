package app

import (
	"context"
	"sort"
	"sync"

	"classquiz-service/internal/domain"
)

// RankingService computes the student leaderboard and fans out fresh
// snapshots to websocket subscribers after each submission batch.
type RankingService struct {
	answers AnswerStore
	users   UserStore

	mu          sync.Mutex
	subscribers map[chan []domain.RankingEntry]struct{}
}

func NewRankingService(answers AnswerStore, users UserStore) *RankingService {
	return &RankingService{
		answers:     answers,
		users:       users,
		subscribers: make(map[chan []domain.RankingEntry]struct{}),
	}
}

type studentTally struct {
	name    string
	correct int
	perQuiz map[string]int
}

// Ranking scans the full answer collection and aggregates per student, then
// per quiz within each student. A quiz the student touched shows up even
// with zero correct answers. The whole leaderboard is recomputed on every
// call; nothing is cached or paginated.
func (s *RankingService) Ranking(ctx context.Context) ([]domain.RankingEntry, error) {
	answers, err := s.answers.ListAnswers(ctx)
	if err != nil {
		return nil, err
	}

	tallies := make(map[string]*studentTally)
	for _, answer := range answers {
		tally, ok := tallies[answer.StudentID]
		if !ok {
			name := answer.StudentID
			if user, err := s.users.UserByID(ctx, answer.StudentID); err == nil {
				name = user.FullName
			}
			tally = &studentTally{name: name, perQuiz: make(map[string]int)}
			tallies[answer.StudentID] = tally
		}
		if _, ok := tally.perQuiz[answer.QuizTitle]; !ok {
			tally.perQuiz[answer.QuizTitle] = 0
		}
		if answer.IsCorrect {
			tally.correct++
			tally.perQuiz[answer.QuizTitle]++
		}
	}

	entries := make([]domain.RankingEntry, 0, len(tallies))
	for _, tally := range tallies {
		taken := make([]domain.QuizScore, 0, len(tally.perQuiz))
		for title, correct := range tally.perQuiz {
			taken = append(taken, domain.QuizScore{QuizTitle: title, CorrectAnswers: correct})
		}
		sort.Slice(taken, func(i, j int) bool { return taken[i].QuizTitle < taken[j].QuizTitle })
		entries = append(entries, domain.RankingEntry{
			StudentName:         tally.name,
			CorrectAnswersCount: tally.correct,
			QuizzesTaken:        taken,
		})
	}

	// Count descending; ties break by name so map iteration order never
	// leaks into the output.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CorrectAnswersCount != entries[j].CorrectAnswersCount {
			return entries[i].CorrectAnswersCount > entries[j].CorrectAnswersCount
		}
		return entries[i].StudentName < entries[j].StudentName
	})
	return entries, nil
}

// Subscribe returns a channel receiving leaderboard snapshots published
// after submissions. The caller must invoke cancel to avoid leaks.
func (s *RankingService) Subscribe() (<-chan []domain.RankingEntry, func()) {
	ch := make(chan []domain.RankingEntry, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Publish recomputes the leaderboard and pushes it to all subscribers.
// Slow subscribers have their stale frame dropped rather than blocking.
func (s *RankingService) Publish(ctx context.Context) {
	entries, err := s.Ranking(ctx)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		select {
		case ch <- entries:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- entries
		}
	}
}
