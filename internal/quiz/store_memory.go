package quiz

import (
	"context"
	"sync"
	"time"
)

// memoryStore backs tests and quick local runs; same contract as SQLStore.
type memoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	quizzes  map[int64]Quiz
	question map[int64]Question        // by question id, without options
	options  map[int64][]Option        // by question id
	attempts map[int64][]AttemptRecord // by question id, append order
}

func NewInMemoryStore() Store {
	return &memoryStore{
		quizzes:  map[int64]Quiz{},
		question: map[int64]Question{},
		options:  map[int64][]Option{},
		attempts: map[int64][]AttemptRecord{},
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryStore) InsertQuiz(_ context.Context, userID, subjectID int64, totalQuestions int) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := Quiz{
		ID:             m.id(),
		UserID:         userID,
		SubjectID:      subjectID,
		TotalQuestions: totalQuestions,
		Status:         StatusCreating,
		CreatedAt:      time.Now().Unix(),
	}
	m.quizzes[q.ID] = q
	return q, nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id int64) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, ErrQuizNotFound
	}
	return q, nil
}

func (m *memoryStore) ListQuizzesByUser(_ context.Context, userID int64) ([]Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Quiz
	for _, q := range m.quizzes {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryStore) UpdateStatus(_ context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quizzes[id]
	if !ok {
		return ErrQuizNotFound
	}
	q.Status = status
	m.quizzes[id] = q
	return nil
}

func (m *memoryStore) DeleteQuiz(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.quizzes, id)
	for qid, q := range m.question {
		if q.QuizID == id {
			delete(m.question, qid)
			delete(m.options, qid)
			delete(m.attempts, qid)
		}
	}
	return nil
}

func (m *memoryStore) InsertQuestion(_ context.Context, quizID int64, description string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[quizID]; !ok {
		return 0, ErrQuizNotFound
	}
	id := m.id()
	m.question[id] = Question{ID: id, QuizID: quizID, Description: description}
	return id, nil
}

func (m *memoryStore) InsertOption(_ context.Context, questionID int64, description string, referenceNumber int, isCorrect bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.options[questionID] = append(m.options[questionID], Option{
		ID:              id,
		QuestionID:      questionID,
		Description:     description,
		ReferenceNumber: referenceNumber,
		IsCorrect:       isCorrect,
	})
	return id, nil
}

func (m *memoryStore) QuestionsByQuiz(_ context.Context, quizID int64) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Question
	for _, q := range m.question {
		if q.QuizID != quizID {
			continue
		}
		q.Options = append([]Option(nil), m.options[q.ID]...)
		if atts := m.attempts[q.ID]; len(atts) > 0 {
			last := atts[len(atts)-1]
			q.LastAttempt = &last
		}
		out = append(out, q)
	}
	// map iteration order is random; keep listings stable by id
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].ID < out[i].ID {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *memoryStore) InsertAttempt(_ context.Context, questionID, selectedOptionID int64, isCorrect bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[questionID] = append(m.attempts[questionID], AttemptRecord{
		QuestionID:       questionID,
		SelectedOptionID: selectedOptionID,
		IsCorrect:        isCorrect,
	})
	return nil
}

func (m *memoryStore) DeleteStaleCreating(_ context.Context, cutoff time.Time) ([]int64, error) {
	m.mu.Lock()
	var ids []int64
	for id, q := range m.quizzes {
		if q.Status == StatusCreating && q.CreatedAt < cutoff.Unix() {
			ids = append(ids, id)
		}
	}
	m.mu.Unlock()
	for _, id := range ids {
		_ = m.DeleteQuiz(context.Background(), id)
	}
	return ids, nil
}
