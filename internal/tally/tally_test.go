package tally

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentIncrementsNeverLost(t *testing.T) {
	const (
		uploads = 100
		fails   = 40
		skips   = 25
	)

	tl := New()
	var wg sync.WaitGroup

	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tl.AddUploaded(10)
		}()
	}
	for i := 0; i < fails; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tl.AddFailed()
		}()
	}
	for i := 0; i < skips; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tl.AddSkipped(5)
		}()
	}
	wg.Wait()

	snap := tl.Snapshot()
	assert.Equal(t, int64(uploads), snap.Uploaded)
	assert.Equal(t, int64(fails), snap.Failed)
	assert.Equal(t, int64(skips), snap.Skipped)
	assert.Equal(t, int64(uploads*10), snap.Bytes)
	assert.Equal(t, int64(uploads+fails), snap.Attempted())
}

func TestAddReturnsRunningCount(t *testing.T) {
	tl := New()
	assert.Equal(t, int64(1), tl.AddUploaded(1))
	assert.Equal(t, int64(2), tl.AddUploaded(1))
	assert.Equal(t, int64(1), tl.AddFailed())
	assert.Equal(t, int64(1), tl.AddSkipped(0))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "2.0 MB", FormatBytes(2*1024*1024))
	assert.Equal(t, "3.0 GB", FormatBytes(3*1024*1024*1024))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0.50s", FormatDuration(500*time.Millisecond))
	assert.Equal(t, "2m3s", FormatDuration(2*time.Minute+3*time.Second))
	assert.Equal(t, "1h0m5s", FormatDuration(time.Hour+5*time.Second))
}
