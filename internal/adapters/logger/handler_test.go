package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/masq/internal/adapters/logger"
)

func TestPrettyHandler_Attributes(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	log := slog.New(logger.NewPrettyHandler(&buf, nil)).
		With("dir", "gripper").
		WithGroup("pair").
		With("file", "task01.pddl")

	log.Warn("changed after it was anonymized", "symbols", 7)
	assert.Equal(t, "! changed after it was anonymized dir=gripper pair.file=task01.pddl pair.symbols=7\n", buf.String())
}

func TestPrettyHandler_SharedLevel(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	level := new(slog.LevelVar)
	log := slog.New(logger.NewPrettyHandler(&buf, &slog.HandlerOptions{Level: level}))

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	level.Set(slog.LevelDebug)
	log.Debug("wrote out/blocks/domain.pddl")
	log.Error("failed to decode symbol table")
	assert.Equal(t, "● wrote out/blocks/domain.pddl\n✗ failed to decode symbol table\n", buf.String())
}
