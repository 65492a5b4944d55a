package voice

import (
	"context"
	"fmt"
	"sync"

	"fjacquet/finsight/internal/apperror"
	"fjacquet/finsight/internal/models"
)

type fakeStore struct {
	mu        sync.Mutex
	txs       []models.Transaction
	nextID    int
	createErr error
	listErr   error
	deleteErr error
	// deleteOK lets that many deletes succeed before deleteErr applies.
	deleteOK int
	deleted  []string
}

func (s *fakeStore) List(_ context.Context, userID string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Transaction
	for _, t := range s.txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return models.Transaction{}, s.createErr
	}
	s.nextID++
	tx.ID = fmt.Sprintf("id-%d", s.nextID)
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *fakeStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil && len(s.deleted) >= s.deleteOK {
		return s.deleteErr
	}
	for i, t := range s.txs {
		if t.ID == id && t.UserID == userID {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return apperror.ErrNotFound
}

type fakeUI struct {
	calls []string
}

func (u *fakeUI) Navigate(route string)       { u.calls = append(u.calls, "navigate:"+route) }
func (u *fakeUI) ScrollTo(element string)     { u.calls = append(u.calls, "scroll:"+element) }
func (u *fakeUI) Filter(category string)      { u.calls = append(u.calls, "filter:"+category) }
func (u *fakeUI) FilterDate(date string)      { u.calls = append(u.calls, "date:"+date) }
func (u *fakeUI) ShowHelp(groups []HelpGroup) { u.calls = append(u.calls, "help") }

type fakeRecognizer struct {
	mu       sync.Mutex
	starts   int
	stops    int
	startErr error
}

func (r *fakeRecognizer) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return r.startErr
	}
	r.starts++
	return nil
}

func (r *fakeRecognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
	return nil
}

type fakeSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (s *fakeSpeaker) Speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
}

func (s *fakeSpeaker) said() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) handle(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) types() []EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EventType, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Type
	}
	return out
}

func (l *eventLog) last() Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return Event{}
	}
	return l.events[len(l.events)-1]
}
