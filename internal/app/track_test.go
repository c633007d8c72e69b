package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/masq/internal/core/domain"
	"go.trai.ch/masq/internal/core/ports"
	"go.trai.ch/masq/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestTrack(t *testing.T) {
	t.Run("success ends the span", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracer := mocks.NewMockTracer(ctrl)
		span := mocks.NewMockSpan(ctrl)

		tracer.EXPECT().Start(gomock.Any(), "blocks/domain.pddl").Return(context.Background(), span)
		span.EXPECT().SetAttribute("kind", "domain")
		span.EXPECT().End()

		a := &App{logger: mocks.NewMockLogger(ctrl)}
		ok := a.track(context.Background(), tracer, "blocks/domain.pddl", func(_ context.Context, s ports.Span) error {
			s.SetAttribute("kind", "domain")
			return nil
		})
		assert.True(t, ok)
	})

	t.Run("failure records and logs the error with its file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracer := mocks.NewMockTracer(ctrl)
		span := mocks.NewMockSpan(ctrl)
		log := mocks.NewMockLogger(ctrl)

		tracer.EXPECT().Start(gomock.Any(), "blocks/task.pddl").Return(context.Background(), span)
		span.EXPECT().RecordError(gomock.Any())
		span.EXPECT().End()

		var logged error
		log.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

		a := &App{logger: log}
		ok := a.track(context.Background(), tracer, "blocks/task.pddl", func(context.Context, ports.Span) error {
			return zerr.Wrap(domain.ErrMissingDomainArtifact, "cannot anonymize problem")
		})
		assert.False(t, ok)

		require.ErrorIs(t, logged, domain.ErrMissingDomainArtifact)
		var z *zerr.Error
		require.True(t, errors.As(logged, &z))
		assert.Equal(t, "blocks/task.pddl", z.Metadata()["file"])
	})
}

func TestFirstDifference(t *testing.T) {
	assert.Equal(t, 2, firstDifference("a\nb\nc", "a\nx\nc"))
	assert.Equal(t, 3, firstDifference("a\nb", "a\nb\nc"))
}

func TestBatchFailed(t *testing.T) {
	err := batchFailed("restore", 2)
	require.ErrorIs(t, err, domain.ErrBatchFailed)
	assert.Contains(t, err.Error(), "restore failed")
}
