package hostlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_ReturnsUsableLogger(t *testing.T) {
	log := New(true, true)
	assert.NotNil(t, log)
	log.Debug("test event")
}

func TestNop_DiscardsEverything(t *testing.T) {
	log := Nop()
	assert.NotNil(t, log)
	log.Info("should not panic")
}
