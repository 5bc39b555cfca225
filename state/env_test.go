package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/charmap"

	"kvc/common"
	"kvc/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Format != common.OutputFmtHtml {
		t.Errorf("default format = %s, want html", env.Format)
	}
	if env.SourceEncoding != nil {
		t.Error("default source encoding should be nil (UTF-8)")
	}
}

func TestEnvFromContext(t *testing.T) {
	t.Run("same env returned", func(t *testing.T) {
		ctx := ContextWithEnv(context.Background())
		if EnvFromContext(ctx) != EnvFromContext(ctx) {
			t.Error("Expected the same environment")
		}
	})

	t.Run("panic on missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic when env not in context")
			}
		}()
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	log.Print("from standard logger")
	env.RestoreStdLog()
	log.Print("after restore")

	entries := logs.FilterMessage("from standard logger").All()
	if len(entries) != 1 {
		t.Errorf("expected redirected entry, got %d", len(entries))
	}
	if logs.FilterMessage("after restore").Len() != 0 {
		t.Error("standard logger should be restored")
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := range 3 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
		if env.restoreStdLog != nil {
			t.Errorf("Iteration %d: restoreStdLog not cleared", i)
		}
	}
}

func TestLocalEnv_NilLogger(t *testing.T) {
	env := &LocalEnv{}
	env.RedirectStdLog()
	env.RestoreStdLog()
	if env.restoreStdLog != nil {
		t.Error("nothing should be redirected without logger")
	}
}

func TestLocalEnv_Fields(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)

	env.Cfg = &config.Config{Version: 1}
	env.Rpt = &config.Report{}
	env.Log = zaptest.NewLogger(t)
	env.NoDirs = true
	env.Format = common.OutputFmtXhtml
	env.Escape = true
	env.SourceEncoding = charmap.Windows1251

	got := EnvFromContext(ctx)
	if got.Cfg.Version != 1 || got.Rpt == nil || got.Log == nil {
		t.Error("Environment not properly initialized")
	}
	if !got.NoDirs || got.Overwrite || !got.Escape || got.Format != common.OutputFmtXhtml {
		t.Errorf("flags not kept: %+v", got)
	}
	if got.SourceEncoding != charmap.Windows1251 {
		t.Error("source encoding not kept")
	}
}
