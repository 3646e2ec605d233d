package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
	"github.com/skinlab/skinanalyzer/internal/domain/intake"
	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
)

func testPreview() intake.Preview {
	return intake.Preview{MIME: "image/png", Size: 42, DataURL: "data:image/png;base64,AAAA"}
}

func testSession(interval time.Duration) *Session {
	return newSession(interval, time.Now)
}

func TestHappyPathTransitions(t *testing.T) {
	sess := testSession(time.Hour)

	require.Equal(t, PhaseLanding, sess.Snapshot().Phase)
	require.NoError(t, sess.Start())
	require.Equal(t, PhaseUpload, sess.Snapshot().Phase)

	require.NoError(t, sess.AttachImage(testPreview()))
	preview, err := sess.Submit()
	require.NoError(t, err)
	require.Equal(t, testPreview().DataURL, preview.DataURL)
	require.Equal(t, PhaseAnalyzing, sess.Snapshot().Phase)

	sess.Complete(analysis.Result{SkinType: analysis.SkinTypeOily})
	snap := sess.Snapshot()
	require.Equal(t, PhaseResults, snap.Phase)
	require.NotNil(t, snap.Result)
	require.Equal(t, len(ProgressSteps), snap.ProgressStep)
	require.Equal(t, 100, snap.ProgressPercent)

	require.NoError(t, sess.Back())
	snap = sess.Snapshot()
	require.Equal(t, PhaseUpload, snap.Phase)
	require.Nil(t, snap.Result)
	require.True(t, snap.HasImage)
}

func TestSubmitGuards(t *testing.T) {
	sess := testSession(time.Hour)

	_, err := sess.Submit()
	require.True(t, apperrors.IsCode(err, "invalid_transition"))

	require.NoError(t, sess.Start())
	_, err = sess.Submit()
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	require.NoError(t, sess.AttachImage(testPreview()))
	_, err = sess.Submit()
	require.NoError(t, err)

	// Re-entrancy: submit is unreachable from analyzing.
	_, err = sess.Submit()
	require.True(t, apperrors.IsCode(err, "invalid_transition"))
}

func TestFailReturnsToUploadWithNotice(t *testing.T) {
	sess := testSession(time.Hour)
	require.NoError(t, sess.Start())
	require.NoError(t, sess.AttachImage(testPreview()))
	_, err := sess.Submit()
	require.NoError(t, err)

	sess.Fail(apperrors.Wrap("rate_limited", "slow down", nil))

	snap := sess.Snapshot()
	require.Equal(t, PhaseUpload, snap.Phase)
	require.Equal(t, "Слишком много запросов, попробуйте позже", snap.Notice)
	require.True(t, snap.HasImage)

	// The notice is transient: reading the snapshot consumed it.
	require.Empty(t, sess.Snapshot().Notice)
}

func TestNoticeMapping(t *testing.T) {
	require.Equal(t, "Превышен лимит использования AI", noticeFor(apperrors.Wrap("quota_exceeded", "", nil)))
	require.Equal(t, "Не удалось связаться с сервисом анализа, попробуйте ещё раз позже", noticeFor(apperrors.Wrap("network_error", "", nil)))
	require.Equal(t, "Ошибка анализа изображения", noticeFor(errors.New("boom")))

	rate := noticeFor(apperrors.Wrap("rate_limited", "", nil))
	quota := noticeFor(apperrors.Wrap("quota_exceeded", "", nil))
	generic := noticeFor(apperrors.Wrap("service_error", "", nil))
	require.NotEqual(t, rate, quota)
	require.NotEqual(t, rate, generic)
	require.NotEqual(t, quota, generic)
}

func TestProgressAdvancesAndClamps(t *testing.T) {
	sess := testSession(5 * time.Millisecond)
	require.NoError(t, sess.Start())
	require.NoError(t, sess.AttachImage(testPreview()))
	_, err := sess.Submit()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return sess.Snapshot().ProgressStep == len(ProgressSteps)-1
	}, time.Second, 2*time.Millisecond)

	// Clamped one short of the final step until a terminal event arrives.
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, len(ProgressSteps)-1, sess.Snapshot().ProgressStep)

	sess.Complete(analysis.Result{})
	require.Equal(t, len(ProgressSteps), sess.Snapshot().ProgressStep)
}

func TestProgressResetsOnEachAnalyzingPhase(t *testing.T) {
	sess := testSession(5 * time.Millisecond)
	require.NoError(t, sess.Start())
	require.NoError(t, sess.AttachImage(testPreview()))

	_, err := sess.Submit()
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return sess.Snapshot().ProgressStep > 0
	}, time.Second, 2*time.Millisecond)

	sess.Fail(errors.New("boom"))
	require.Equal(t, 0, sess.Snapshot().ProgressStep)

	_, err = sess.Submit()
	require.NoError(t, err)
	require.Equal(t, 0, sess.Snapshot().ProgressStep)
	sess.Complete(analysis.Result{})
}

func TestTickerStopsOnTerminalTransitions(t *testing.T) {
	sess := testSession(5 * time.Millisecond)
	require.NoError(t, sess.Start())
	require.NoError(t, sess.AttachImage(testPreview()))
	_, err := sess.Submit()
	require.NoError(t, err)

	sess.Complete(analysis.Result{})
	require.Nil(t, sess.progressStop)

	require.NoError(t, sess.Back())
	_, err = sess.Submit()
	require.NoError(t, err)
	sess.Fail(errors.New("boom"))
	require.Nil(t, sess.progressStop)

	// A stopped ticker must not keep mutating progress.
	step := sess.Snapshot().ProgressStep
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, step, sess.Snapshot().ProgressStep)
}

func TestManagerCreateGetAndSweep(t *testing.T) {
	mgr := NewManager(Config{TTL: time.Minute, ProgressInterval: time.Hour})
	sess := mgr.Create()

	got, ok := mgr.Get(sess.ID())
	require.True(t, ok)
	require.Equal(t, sess.ID(), got.ID())

	current := time.Now()
	mgr.now = func() time.Time { return current.Add(2 * time.Minute) }
	mgr.Create() // triggers the sweep

	_, ok = mgr.Get(sess.ID())
	require.False(t, ok)
}
