package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
	"github.com/skinlab/skinanalyzer/internal/domain/intake"
	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
)

// Phase is the single per-session view phase. It is mutated only through the
// named transitions below, never through ad hoc flag toggles.
type Phase string

const (
	PhaseLanding   Phase = "landing"
	PhaseUpload    Phase = "upload"
	PhaseAnalyzing Phase = "analyzing"
	PhaseResults   Phase = "results"
)

// ProgressSteps are the cosmetic analysis stages shown while the real
// gateway call is in flight. The counter is decoupled from actual progress.
var ProgressSteps = []string{
	"Загрузка изображения...",
	"Определение типа кожи...",
	"Анализ проблемных зон...",
	"Оценка состояния...",
	"Формирование рекомендаций...",
}

// Session owns one user's upload → analyzing → results flow. At most one
// image and one result exist at a time; the progress ticker never outlives
// the analyzing phase.
type Session struct {
	id uuid.UUID

	mu        sync.Mutex
	phase     Phase
	image     *intake.Preview
	result    *analysis.Result
	progress  int
	notice    string
	updatedAt time.Time

	progressStop     chan struct{}
	progressInterval time.Duration
	now              func() time.Time
}

func newSession(interval time.Duration, now func() time.Time) *Session {
	return &Session{
		id:               uuid.New(),
		phase:            PhaseLanding,
		progressInterval: interval,
		now:              now,
		updatedAt:        now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Start moves landing → upload.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseLanding {
		return transitionError(s.phase, "start")
	}
	s.phase = PhaseUpload
	s.touchLocked()
	return nil
}

// AttachImage stores the validated preview, replacing any previous one.
func (s *Session) AttachImage(preview intake.Preview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseUpload {
		return transitionError(s.phase, "attach image")
	}
	s.image = &preview
	s.touchLocked()
	return nil
}

// ClearImage discards the held image.
func (s *Session) ClearImage() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseUpload {
		return transitionError(s.phase, "clear image")
	}
	s.image = nil
	s.touchLocked()
	return nil
}

// Submit moves upload → analyzing and returns the image to analyze. The
// guard makes re-entrancy impossible: analyzing is unreachable from itself,
// so at most one gateway call is in flight per session.
func (s *Session) Submit() (intake.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseUpload {
		return intake.Preview{}, transitionError(s.phase, "submit")
	}
	if s.image == nil {
		return intake.Preview{}, apperrors.Wrap("invalid_input", "Сначала загрузите фотографию", nil)
	}
	s.phase = PhaseAnalyzing
	s.progress = 0
	s.notice = ""
	s.startProgressLocked()
	s.touchLocked()
	return *s.image, nil
}

// Complete moves analyzing → results, stopping the progress ticker and
// snapping the counter to its terminal value.
func (s *Session) Complete(result analysis.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseAnalyzing {
		return
	}
	s.stopProgressLocked()
	s.result = &result
	s.progress = len(ProgressSteps)
	s.phase = PhaseResults
	s.touchLocked()
}

// Fail moves analyzing → upload and records the transient user notice. The
// held image survives so the user can retry without re-uploading.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseAnalyzing {
		return
	}
	s.stopProgressLocked()
	s.progress = 0
	s.notice = noticeFor(err)
	s.phase = PhaseUpload
	s.touchLocked()
}

// Back moves results → upload, discarding the held result.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseResults {
		return transitionError(s.phase, "back")
	}
	s.result = nil
	s.phase = PhaseUpload
	s.touchLocked()
	return nil
}

// Snapshot captures the observable session state. Reading it consumes the
// transient notice.
type Snapshot struct {
	ID              uuid.UUID
	Phase           Phase
	HasImage        bool
	ImageDataURL    string
	ProgressStep    int
	ProgressLabel   string
	ProgressPercent int
	Notice          string
	Result          *analysis.Result
}

// Snapshot returns a copy of the current state and clears the notice.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:           s.id,
		Phase:        s.phase,
		ProgressStep: s.progress,
		Notice:       s.notice,
	}
	s.notice = ""
	if s.image != nil {
		snap.HasImage = true
		snap.ImageDataURL = s.image.DataURL
	}
	if s.result != nil {
		copied := *s.result
		snap.Result = &copied
	}
	if s.phase == PhaseAnalyzing && s.progress < len(ProgressSteps) {
		snap.ProgressLabel = ProgressSteps[s.progress]
	}
	snap.ProgressPercent = s.progress * 100 / len(ProgressSteps)
	return snap
}

// startProgressLocked launches the cosmetic ticker. It advances one step per
// interval and clamps one short of the final step until a terminal event.
func (s *Session) startProgressLocked() {
	stop := make(chan struct{})
	s.progressStop = stop
	interval := s.progressInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.phase == PhaseAnalyzing && s.progress < len(ProgressSteps)-1 {
					s.progress++
				}
				s.mu.Unlock()
			}
		}
	}()
}

func (s *Session) stopProgressLocked() {
	if s.progressStop != nil {
		close(s.progressStop)
		s.progressStop = nil
	}
}

func (s *Session) touchLocked() {
	s.updatedAt = s.now()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.updatedAt)
}

// shutdown stops any running ticker; used when the manager evicts a session.
func (s *Session) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopProgressLocked()
}

func transitionError(phase Phase, action string) error {
	return apperrors.Wrap("invalid_transition", "cannot "+action+" while in phase "+string(phase), nil)
}

// noticeFor maps a failed analysis to the transient user-facing message.
// Rate-limit and quota failures get distinct texts; content failures never
// reach this path because they are masked with the fallback result.
func noticeFor(err error) string {
	switch {
	case apperrors.IsCode(err, "rate_limited"):
		return "Слишком много запросов, попробуйте позже"
	case apperrors.IsCode(err, "quota_exceeded"):
		return "Превышен лимит использования AI"
	case apperrors.IsCode(err, "network_error"):
		return "Не удалось связаться с сервисом анализа, попробуйте ещё раз позже"
	default:
		return "Ошибка анализа изображения"
	}
}
