package flow

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageRouter(t *testing.T) {
	t.Parallel()

	r := NewPageRouter()
	require.Equal(t, PageWelcome, r.Page())

	require.ErrorIs(t, r.Complete("a@b.co", "Ahmed"), ErrInvalidTransition)
	require.NoError(t, r.Start())
	require.ErrorIs(t, r.Start(), ErrInvalidTransition)
	require.Equal(t, PageSignup, r.Page())

	_, ok := r.Completion()
	require.False(t, ok)

	require.NoError(t, r.Complete("a@b.co", "Ahmed"))
	require.Equal(t, PageComplete, r.Page())
	got, ok := r.Completion()
	require.True(t, ok)
	require.Equal(t, Completion{Email: "a@b.co", FirstName: "Ahmed"}, got)

	require.ErrorIs(t, r.Start(), ErrInvalidTransition)
}

func TestJourney(t *testing.T) {
	t.Parallel()

	var notified int
	j := NewJourney(Deps{
		Registrar:  &stubRegistrar{},
		Profiles:   stubProfiles{profile: ahmed},
		OnComplete: func(Completion) { notified++ },
	})

	_, err := j.Signup()
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, j.Router.Start())
	ctrl, err := j.Signup()
	require.NoError(t, err)

	require.NoError(t, ctrl.BeginIdentitySignup(context.Background(), "g"))
	require.NoError(t, ctrl.SubmitPreferences(context.Background(), goodPrefs))

	v := j.View()
	require.Equal(t, PageComplete, v.Page)
	require.Equal(t, PhaseComplete, v.Flow.Phase)
	require.Equal(t, 1, notified)
}

func TestJourneyViewNeverLagsCompletion(t *testing.T) {
	t.Parallel()

	reg := &stubRegistrar{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	j := NewJourney(Deps{Registrar: reg, Profiles: stubProfiles{profile: ahmed}})
	require.NoError(t, j.Router.Start())

	ctrl, err := j.Signup()
	require.NoError(t, err)
	require.NoError(t, ctrl.BeginIdentitySignup(context.Background(), "g"))

	done := make(chan error, 1)
	go func() { done <- ctrl.SubmitPreferences(context.Background(), goodPrefs) }()
	<-reg.entered

	stop := make(chan struct{})
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		skewed []View
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if v := j.View(); v.Flow.Phase == PhaseComplete && v.Page != PageComplete {
					mu.Lock()
					skewed = append(skewed, v)
					mu.Unlock()
				}
			}
		}()
	}

	close(reg.block)
	require.NoError(t, <-done)
	close(stop)
	wg.Wait()

	require.Empty(t, skewed)
	v := j.View()
	require.Equal(t, PageComplete, v.Page)
	require.Equal(t, PhaseComplete, v.Flow.Phase)
}
