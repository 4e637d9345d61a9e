package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBanner_ShowsRunState(t *testing.T) {
	styles := NewStyleSet(DarkTheme)

	idle := renderBanner(styles, bannerInfo{endpoint: testEndpoint, phase: phaseIdle}, 80)
	assert.Contains(t, idle, "vdev")
	assert.Contains(t, idle, testEndpoint)
	assert.Contains(t, idle, "siap")
	assert.NotContains(t, idle, "#")

	running := renderBanner(styles, bannerInfo{
		version:   "1.2.0",
		endpoint:  testEndpoint,
		sessionID: "0f8fad5b-d9cb-469f-a165-70867728950e",
		phase:     phaseRunning,
	}, 80)
	assert.Contains(t, running, "v1.2.0")
	assert.Contains(t, running, "berjalan")
	assert.Contains(t, running, "#0f8fad5b")
	assert.NotContains(t, running, "d9cb")
}

func TestDisplay_BannerFollowsSession(t *testing.T) {
	d, src := newTestDisplay(t, Options{Rearm: true})
	assert.Contains(t, d.View(), "siap")

	cmd := d.Start()
	assert.Contains(t, d.View(), "berjalan")

	src.Last().EmitJSON(map[string]any{"type": "error", "message": "DB down"})
	pump(t, d, cmd)
	assert.Contains(t, d.View(), "gagal")
	assert.False(t, d.Active())

	cmd = d.Start()
	src.Last().EmitJSON(map[string]any{"type": "process_complete"})
	pump(t, d, cmd)
	assert.Contains(t, d.View(), "selesai")
}
