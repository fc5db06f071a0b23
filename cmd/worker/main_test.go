package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movequote/movequote/internal/app"
	_ "github.com/movequote/movequote/internal/testing/guard"
)

func TestWorkerSkipsStartupInTestMode(t *testing.T) {
	app.RefreshTestMode()
	assert.True(t, app.InTestMode())
	assert.NotPanics(t, main)
}
