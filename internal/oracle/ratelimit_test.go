package oracle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/oracle"
	"billscan/internal/port"
	"billscan/mocks"
)

func TestNewRateLimited_DisabledReturnsNext(t *testing.T) {
	next := new(mocks.MockCompletionOracle)
	assert.Same(t, next, oracle.NewRateLimited(next, 0))
}

func TestRateLimited_ThrottlesSecondCall(t *testing.T) {
	next := new(mocks.MockCompletionOracle)
	input := port.CompletionInput{Prompt: "p"}
	next.On("Complete", mock.Anything, input).Return(&port.CompletionOutput{Text: "ok"}, nil)

	// one call per minute: the first is admitted by the burst, the second must wait
	limited := oracle.NewRateLimited(next, 1)

	out, err := limited.Complete(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Text)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = limited.Complete(ctx, input)
	assert.ErrorIs(t, err, domain.ErrCompletionService)
	next.AssertNumberOfCalls(t, "Complete", 1)
}
