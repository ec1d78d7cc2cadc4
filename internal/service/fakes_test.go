package service

import (
	"context"
	"desafiabrasil/internal/cache"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var errStoreDown = errors.New("store down")

// --- questions ---

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]*model.Question
	nextID    int

	findErr  error
	getErr   map[string]error
	statsErr error
	statsLog []string
}

func newFakeQuestionRepo(qs ...*model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: map[string]*model.Question{}, getErr: map[string]error{}}
	for _, q := range qs {
		r.questions[q.ID] = q
	}
	return r
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q.ID == "" {
		r.nextID++
		q.ID = fmt.Sprintf("q%03d", r.nextID)
	}
	cp := *q
	r.questions[q.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.getErr[id]; err != nil {
		return nil, err
	}
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.questions[q.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) selectable(subject model.Subject, difficulties []model.Difficulty) []*model.Question {
	tmpl := model.ExamTemplate{Difficulties: difficulties}
	var out []*model.Question
	for _, q := range r.questions {
		if q.Subject == subject && q.Active && q.Approved && tmpl.AllowsDifficulty(q.Difficulty) {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeQuestionRepo) FindBySubjectAndDifficulty(_ context.Context, subject model.Subject, difficulties []model.Difficulty) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.selectable(subject, difficulties), nil
}

func (r *fakeQuestionRepo) CountBySubjectAndDifficulty(_ context.Context, subject model.Subject, difficulties []model.Difficulty) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return 0, r.findErr
	}
	return len(r.selectable(subject, difficulties)), nil
}

func (r *fakeQuestionRepo) IncrementAnswerStats(_ context.Context, id string, correct bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statsLog = append(r.statsLog, id)
	if r.statsErr != nil {
		return r.statsErr
	}
	q, ok := r.questions[id]
	if !ok {
		return errors.New("no such question")
	}
	q.TimesAnswered++
	if correct {
		q.TimesCorrect++
	}
	q.AccuracyPercent = RoundPercent(q.TimesCorrect, q.TimesAnswered)
	return nil
}

func (r *fakeQuestionRepo) List(_ context.Context, filter model.QuestionFilter) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Question
	for _, q := range r.questions {
		if filter.Subject != "" && q.Subject != filter.Subject {
			continue
		}
		switch filter.Status {
		case model.ReviewPending:
			if q.Approved || q.Rejected {
				continue
			}
		case model.ReviewApproved:
			if !q.Approved {
				continue
			}
		case model.ReviewRejected:
			if !q.Rejected {
				continue
			}
		}
		cp := *q
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuestionRepo) SetReview(_ context.Context, id string, status model.ReviewStatus, reviewerID string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	q.ReviewedBy = reviewerID
	q.Approved = status == model.ReviewApproved
	q.Rejected = status == model.ReviewRejected
	q.Active = status == model.ReviewApproved
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionRepo) SetActive(_ context.Context, id string, active bool) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	q.Active = active
	cp := *q
	return &cp, nil
}

// --- users ---

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[string]*model.User
	nextID   int
	applyErr error
	getErr   error
}

func newFakeUserRepo(us ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*model.User{}}
	for _, u := range us {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("u%03d", r.nextID)
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.Badges = append([]string{}, u.Badges...)
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []string) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ApplyExamResult(_ context.Context, id string, points int, badges []string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyErr != nil {
		return nil, r.applyErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.TotalScore += points
	u.ExamsCompleted++
	for _, b := range badges {
		if !u.HasBadge(b) {
			u.Badges = append(u.Badges, b)
		}
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) TopByScore(_ context.Context, limit int) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.users {
		if u.ExamsCompleted > 0 {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id, role string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

// --- exam results ---

type fakeResultRepo struct {
	records []*model.ExamRecord
	err     error
}

func (r *fakeResultRepo) Create(_ context.Context, rec *model.ExamRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeResultRepo) ListByUser(_ context.Context, userID string, limit int) ([]*model.ExamRecord, error) {
	var out []*model.ExamRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

// --- caches ---

type fakeLeaderboard struct {
	mu     sync.Mutex
	boards map[string]map[string]int
	err    error
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{boards: map[string]map[string]int{}}
}

func (l *fakeLeaderboard) board(name string) map[string]int {
	if l.boards[name] == nil {
		l.boards[name] = map[string]int{}
	}
	return l.boards[name]
}

func (l *fakeLeaderboard) SetScore(_ context.Context, board, userID string, score int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.board(board)[userID] = score
	return nil
}

func (l *fakeLeaderboard) SetBest(_ context.Context, board, userID string, score int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	b := l.board(board)
	if cur, ok := b[userID]; !ok || score > cur {
		b[userID] = score
	}
	return nil
}

func (l *fakeLeaderboard) sorted(board string) []cache.LeaderboardEntry {
	var out []cache.LeaderboardEntry
	for id, s := range l.boards[board] {
		out = append(out, cache.LeaderboardEntry{UserID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserID > out[j].UserID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func (l *fakeLeaderboard) GetTop(_ context.Context, board string, limit int) ([]cache.LeaderboardEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	out := l.sorted(board)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *fakeLeaderboard) GetRank(_ context.Context, board, userID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return 0, l.err
	}
	for _, e := range l.sorted(board) {
		if e.UserID == userID {
			return int64(e.Rank), nil
		}
	}
	return -1, nil
}

func (l *fakeLeaderboard) Replace(_ context.Context, board string, scores map[string]int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.boards[board] = map[string]int{}
	for id, s := range scores {
		l.boards[board][id] = s
	}
	return nil
}

type fakeSessions struct {
	sessions map[string]*model.ExamSession
	err      error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*model.ExamSession{}}
}

func (c *fakeSessions) Set(_ context.Context, s *model.ExamSession) error {
	if c.err != nil {
		return c.err
	}
	c.sessions[s.UserID+"/"+s.TemplateID] = s
	return nil
}

func (c *fakeSessions) Get(_ context.Context, userID, templateID string) (*model.ExamSession, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.sessions[userID+"/"+templateID], nil
}

func (c *fakeSessions) Delete(_ context.Context, userID, templateID string) error {
	delete(c.sessions, userID+"/"+templateID)
	return nil
}

type fakeAvailability struct {
	items       []model.TemplateAvailability
	sets        int
	invalidated int
}

func (c *fakeAvailability) Set(_ context.Context, items []model.TemplateAvailability) error {
	c.items = items
	c.sets++
	return nil
}

func (c *fakeAvailability) Get(_ context.Context) ([]model.TemplateAvailability, error) {
	return c.items, nil
}

func (c *fakeAvailability) Invalidate(_ context.Context) error {
	c.items = nil
	c.invalidated++
	return nil
}

type published struct {
	topic   string
	msgType string
	payload interface{}
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent []published
}

func (b *fakeBroadcaster) Publish(topic, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, published{topic, msgType, payload})
}

// --- builders ---

// bank returns n approved, active questions of subject at difficulty whose
// correct option is always "A"
func bank(subject model.Subject, difficulty model.Difficulty, n int) []*model.Question {
	out := make([]*model.Question, n)
	for i := range out {
		out[i] = &model.Question{
			ID:         fmt.Sprintf("%s-%s-%02d", subject, difficulty, i),
			Subject:    subject,
			Difficulty: difficulty,
			Prompt:     fmt.Sprintf("%s question %d", subject, i),
			Options: []model.Option{
				{Label: "A", Text: "alpha"},
				{Label: "B", Text: "beta"},
				{Label: "C", Text: "gamma"},
				{Label: "D", Text: "delta"},
			},
			CorrectOption: "A",
			Explanation:   "because alpha",
			Active:        true,
			Approved:      true,
		}
	}
	return out
}

func concat(groups ...[]*model.Question) []*model.Question {
	var out []*model.Question
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
