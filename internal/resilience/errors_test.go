package resilience

import (
	"context"
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestNewBoundaryError_Classification(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{401, KindAuth},
		{403, KindAuth},
		{402, KindQuota},
		{429, KindQuota},
		{500, KindTransient},
		{502, KindTransient},
		{503, KindTransient},
		{400, KindTransient},
	}
	for _, tt := range tests {
		be := NewBoundaryError(assert.AnError, tt.status)
		assert.Equal(t, tt.want, be.Kind, "status %d", tt.status)
		assert.Equal(t, tt.status, be.StatusCode)
	}
}

func TestBoundaryError_Unwraps(t *testing.T) {
	base := eris.New("upstream broke")
	be := NewBoundaryError(base, 500)
	assert.ErrorIs(t, be, base)
	assert.Equal(t, base.Error(), be.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindAuth, KindOf(NewBoundaryError(assert.AnError, 403)))
	assert.Equal(t, KindQuota, KindOf(NewBoundaryError(assert.AnError, 429)))
	assert.Equal(t, KindTransient, KindOf(assert.AnError))

	wrapped := eris.Wrap(NewBoundaryError(assert.AnError, 401), "search: provider call")
	assert.Equal(t, KindAuth, KindOf(wrapped))
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.True(t, IsTransient(NewBoundaryError(assert.AnError, 500)))
	assert.True(t, IsTransient(NewBoundaryError(assert.AnError, 429)), "quota errors clear on their own")
	assert.False(t, IsTransient(NewBoundaryError(assert.AnError, 401)))

	assert.True(t, IsTransient(syscall.ECONNRESET))
	assert.True(t, IsTransient(eris.Wrap(syscall.ECONNREFUSED, "apify: send request")))
	assert.True(t, IsTransient(eris.New("Get \"https://example.com\": dial tcp: i/o timeout")))
	assert.True(t, IsTransient(eris.New("lookup api.apify.com: no such host")))

	assert.False(t, IsTransient(eris.New("validation failed")))
	assert.False(t, IsTransient(context.Canceled))
}
