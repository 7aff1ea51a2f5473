package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"doctor-schedule-service/internal/domain/entity"
	"doctor-schedule-service/internal/domain/repository"
)

// ── Mock DoctorScheduleRepository ──

// mockScheduleRepo mirrors the table: auto-increment slot ids and the
// (doctor, date, shift) unique constraint.
type mockScheduleRepo struct {
	mu        sync.Mutex
	schedules map[int64]entity.DoctorSchedule
	nextID    int64

	// skipShiftLookup hides existing rows from FindByDoctorIDAndDateAndShift,
	// simulating a concurrent insert that lands after the lookup.
	skipShiftLookup bool

	// beforeUpdate runs ahead of the update and afterFindByDoctor (once) after
	// the read, each standing in for a concurrent request landing in that window.
	beforeUpdate      func()
	afterFindByDoctor func()

	findByIDCalls     int
	findByDoctorCalls int

	err error
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[int64]entity.DoctorSchedule)}
}

func (m *mockScheduleRepo) seed(s entity.DoctorSchedule) entity.DoctorSchedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.SlotID = m.nextID
	m.schedules[s.SlotID] = s
	return s
}

func (m *mockScheduleRepo) conflicts(s *entity.DoctorSchedule) bool {
	for id, existing := range m.schedules {
		if id == s.SlotID {
			continue
		}
		if existing.DoctorID == s.DoctorID && sameDay(existing.ScheduleDate, s.ScheduleDate) && existing.Shift == s.Shift {
			return true
		}
	}
	return false
}

func (m *mockScheduleRepo) Create(_ context.Context, s *entity.DoctorSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.conflicts(s) {
		return repository.ErrDuplicateSchedule
	}
	m.nextID++
	s.SlotID = m.nextID
	m.schedules[s.SlotID] = *s
	return nil
}

func (m *mockScheduleRepo) FindByID(_ context.Context, slotID int64) (*entity.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findByIDCalls++
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.schedules[slotID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockScheduleRepo) FindAll(_ context.Context) ([]entity.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.filter(func(entity.DoctorSchedule) bool { return true }), nil
}

func (m *mockScheduleRepo) Update(_ context.Context, s *entity.DoctorSchedule) (int64, error) {
	if m.beforeUpdate != nil {
		m.beforeUpdate()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.schedules[s.SlotID]; !ok {
		return 0, nil
	}
	if m.conflicts(s) {
		return 0, repository.ErrDuplicateSchedule
	}
	m.schedules[s.SlotID] = *s
	return 1, nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, slotID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, ok := m.schedules[slotID]; !ok {
		return 0, nil
	}
	delete(m.schedules, slotID)
	return 1, nil
}

func (m *mockScheduleRepo) FindByDoctorID(_ context.Context, doctorID int64) ([]entity.DoctorSchedule, error) {
	m.mu.Lock()
	m.findByDoctorCalls++
	if m.err != nil {
		m.mu.Unlock()
		return nil, m.err
	}
	schedules := m.filter(func(s entity.DoctorSchedule) bool { return s.DoctorID == doctorID })
	m.mu.Unlock()

	if hook := m.afterFindByDoctor; hook != nil {
		m.afterFindByDoctor = nil
		hook()
	}
	return schedules, nil
}

func (m *mockScheduleRepo) FindByDoctorIDAndDate(_ context.Context, doctorID int64, date time.Time) ([]entity.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.filter(func(s entity.DoctorSchedule) bool {
		return s.DoctorID == doctorID && sameDay(s.ScheduleDate, date)
	}), nil
}

func (m *mockScheduleRepo) FindByDoctorIDAndDateAndShift(_ context.Context, doctorID int64, date time.Time, shift string) ([]entity.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.skipShiftLookup {
		return []entity.DoctorSchedule{}, nil
	}
	return m.filter(func(s entity.DoctorSchedule) bool {
		return s.DoctorID == doctorID && sameDay(s.ScheduleDate, date) && s.Shift == shift
	}), nil
}

func (m *mockScheduleRepo) FindByDoctorIDAndDateAfter(_ context.Context, doctorID int64, date time.Time) ([]entity.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	day := date.Format(entity.DateLayout)
	result := m.filter(func(s entity.DoctorSchedule) bool {
		return s.DoctorID == doctorID && s.ScheduleDate.Format(entity.DateLayout) > day
	})
	sort.SliceStable(result, func(i, j int) bool {
		di, dj := result[i].ScheduleDate.Format(entity.DateLayout), result[j].ScheduleDate.Format(entity.DateLayout)
		if di != dj {
			return di < dj
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

// filter returns matches ordered by slot id, never nil.
func (m *mockScheduleRepo) filter(keep func(entity.DoctorSchedule) bool) []entity.DoctorSchedule {
	result := []entity.DoctorSchedule{}
	for _, s := range m.schedules {
		if keep(s) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SlotID < result[j].SlotID })
	return result
}

func sameDay(a, b time.Time) bool {
	return a.Format(entity.DateLayout) == b.Format(entity.DateLayout)
}

// ── Mock EventPublisher ──

type mockPublisher struct {
	mu     sync.Mutex
	events []entity.ScheduleEvent
	err    error
}

func (p *mockPublisher) Publish(_ context.Context, event entity.ScheduleEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *mockPublisher) Close() error { return nil }
